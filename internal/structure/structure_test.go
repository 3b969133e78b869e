package structure

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lps/internal/config"
	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/walker"
	"github.com/standardbeagle/lps/testhelpers"
)

func newAnalyzer(sink debug.Sink) *Analyzer {
	return NewAnalyzer(walker.New(walker.Options{Ignore: config.DefaultIgnore}), sink)
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.ts", ".ts"},
		{"user.service.ts", ".ts"},
		{"Makefile", ""},
		{".env", ""},
		{".eslintrc.json", ".json"},
		{"trailing.", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ext(tt.name))
		})
	}
}

func TestAnalyze(t *testing.T) {
	root := testhelpers.NewSourceTree(t, "frontend", "src", map[string]string{
		"main.ts":                 "",
		"app/App.tsx":             "",
		"app/widgets/Button.tsx":  "",
		"node_modules/react/x.js": "",
	})

	a := newAnalyzer(nil)

	t.Run("DepthTwo", func(t *testing.T) {
		tree := a.Analyze(root, 2)
		require.NotNil(t, tree)
		assert.Equal(t, "src", tree.Name)
		assert.Equal(t, KindDirectory, tree.Kind)
		assert.ElementsMatch(t, []string{"main.ts", "app"}, names(tree.Children))

		for _, c := range tree.Children {
			if c.Name == "app" {
				// widgets sits at the depth boundary and is dropped
				assert.Equal(t, []string{"App.tsx"}, names(c.Children))
				assert.Equal(t, ".tsx", c.Children[0].Extension)
				assert.Equal(t, KindFile, c.Children[0].Kind)
			}
		}
	})

	t.Run("DepthZero", func(t *testing.T) {
		assert.Nil(t, a.Analyze(root, 0))
	})
}

func TestAnalyzeDepthOneOmitsSubdirectoryButStatsCountIt(t *testing.T) {
	root := testhelpers.NewSourceTree(t, "backend", "src", map[string]string{
		"main.ts":               "",
		"users/user.service.ts": "",
	})

	a := newAnalyzer(nil)

	tree := a.Analyze(root, 1)
	require.NotNil(t, tree)
	assert.Equal(t, []string{"main.ts"}, names(tree.Children))

	stats := a.Stats(root)
	assert.Equal(t, 1, stats.Directories)
	assert.Equal(t, 2, stats.TSFiles)
	assert.Equal(t, 1, stats.Services)
}

func TestAnalyzeUnreadableRoot(t *testing.T) {
	var buf bytes.Buffer
	a := newAnalyzer(debug.NewWriterLogger(&buf))

	missing := filepath.Join(t.TempDir(), "missing")
	tree := a.Analyze(missing, 3)
	require.NotNil(t, tree)
	assert.Equal(t, "missing", tree.Name)
	assert.Empty(t, tree.Children)
	assert.Contains(t, buf.String(), "Error analyzing directory")

	assert.Equal(t, Stats{}, a.Stats(missing))
}

func TestStats(t *testing.T) {
	root := testhelpers.NewSourceTree(t, "frontend", "src", map[string]string{
		"main.ts":                       "",
		"app/App.tsx":                   "",
		"app/header.component.ts":       "",
		"app/legacy/widget.jsx":         "",
		"app/legacy/util.js":            "",
		"services/ApiService.ts":        "",
		"services/ServiceComponent.vue": "",
		"styles/app.css":                "",
		"dist/bundle.js":                "",
		"node_modules/lib/service.js":   "",
	})

	stats := newAnalyzer(nil).Stats(root)

	assert.Equal(t, Stats{
		TSFiles:     4, // main.ts App.tsx header.component.ts ApiService.ts
		JSFiles:     2, // widget.jsx util.js
		Components:  4, // App.tsx header.component.ts widget.jsx ServiceComponent.vue
		Services:    2, // ApiService.ts ServiceComponent.vue
		Directories: 4, // app app/legacy services styles
	}, stats)
}

func TestTreeFormatter(t *testing.T) {
	tree := &Node{
		Name: "src",
		Kind: KindDirectory,
		Children: []*Node{
			{Name: "main.ts", Kind: KindFile, Extension: ".ts"},
			{Name: "app", Kind: KindDirectory, Children: []*Node{
				{Name: "App.tsx", Kind: KindFile, Extension: ".tsx"},
			}},
		},
	}

	t.Run("Text", func(t *testing.T) {
		out := NewTreeFormatter(FormatterOptions{}).Format(tree)
		assert.Equal(t, "📁 src\n  📄 main.ts\n  📁 app\n    📄 App.tsx\n", out)
	})

	t.Run("NilText", func(t *testing.T) {
		assert.Equal(t, "", NewTreeFormatter(FormatterOptions{}).Format(nil))
	})

	t.Run("Compact", func(t *testing.T) {
		out := NewTreeFormatter(FormatterOptions{Format: "compact"}).Format(tree)
		assert.Equal(t, "src: main.ts app/", out)
	})

	t.Run("JSON", func(t *testing.T) {
		out := NewTreeFormatter(FormatterOptions{Format: "json"}).Format(tree)
		assert.Contains(t, out, `"name": "src"`)
		assert.Contains(t, out, `"type": "directory"`)
		assert.Contains(t, out, `"extension": ".tsx"`)
	})
}

func TestNewTreeFormatterDefaultsIndent(t *testing.T) {
	formatter := NewTreeFormatter(FormatterOptions{})
	assert.Equal(t, "  ", formatter.options.Indent)

	formatter = NewTreeFormatter(FormatterOptions{Indent: "\t"})
	assert.Equal(t, "\t", formatter.options.Indent)
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(Stats{TSFiles: 3, JSFiles: 1, Components: 2, Services: 1, Directories: 4})
	assert.Equal(t, "\n📊 Statistics:\n"+
		"  - TypeScript files: 3\n"+
		"  - JavaScript files: 1\n"+
		"  - Component files: 2\n"+
		"  - Service files: 1\n"+
		"  - Total directories: 4\n", out)
}
