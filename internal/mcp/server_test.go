package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lps/internal/config"
	"github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/navigator"
	"github.com/standardbeagle/lps/testhelpers"
)

const (
	mainPath    = "[frontend/src]/main.ts"
	servicePath = "[backend/src]/users/user.service.ts"
	mainContent = "import { a.b } from './x';\nbootstrap();\n"
)

// newTestServer serves two sibling roots:
//
//	frontend/src/main.ts
//	backend/src/users/user.service.ts
func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()

	frontend, backend := testhelpers.NewSiblingRoots(t, "frontend", "backend", "src")
	testhelpers.WriteFile(t, frontend, "main.ts", mainContent)
	testhelpers.WriteFile(t, backend, "users/user.service.ts", testhelpers.TestData.Service)

	cfg := config.Default()
	cfg.Roots = []string{frontend, backend}

	var diag bytes.Buffer
	logger := debug.NewWriterLogger(&diag)
	nav, err := navigator.New(cfg, navigator.Options{Sink: logger})
	require.NoError(t, err)

	s, err := NewServer(nav, logger)
	require.NoError(t, err)
	return s, &diag
}

func call(t *testing.T, s *Server, tool string, args string) *mcp.CallToolResult {
	t.Helper()
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      tool,
			Arguments: json.RawMessage(args),
		},
	}
	res, err := s.GetHandlerForTesting(tool)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func errorBody(t *testing.T, res *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.True(t, res.IsError)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &body))
	assert.Equal(t, false, body["success"])
	return body
}

func TestNewServerRequiresNavigator(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestRequiredArguments(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		tool  string
		args  string
		field string
	}{
		{toolReadFile, `{}`, "filePath"},
		{toolSearch, `{"maxResults": 5}`, "query"},
		{toolReadMultiple, `{"maxFiles": 5}`, "patterns"},
		{toolExtractFunction, `{"filePath": "` + mainPath + `"}`, "functionName"},
		{toolExtractFunction, `{"functionName": "x"}`, "filePath"},
		{toolReadSection, `{"filePath": "` + mainPath + `", "endLine": 2}`, "startLine"},
		{toolReadSection, `{"filePath": "` + mainPath + `", "startLine": 1}`, "endLine"},
		{toolReadSection, `{"startLine": 1, "endLine": 2}`, "filePath"},
	}

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.field, func(t *testing.T) {
			body := errorBody(t, call(t, s, tt.tool, tt.args))
			assert.Equal(t, tt.field, body["field"])
			assert.Equal(t, string(ErrCodeRequired), body["code"])
			assert.Equal(t, tt.tool, body["operation"])
			assert.NotEmpty(t, body["example"])
		})
	}
}

func TestMalformedArguments(t *testing.T) {
	s, _ := newTestServer(t)

	body := errorBody(t, call(t, s, toolSearch, `{"query": 7}`))
	assert.Equal(t, "arguments", body["field"])
	assert.Equal(t, string(ErrCodeInvalidFormat), body["code"])
}

func TestListFilesWithoutArguments(t *testing.T) {
	s, _ := newTestServer(t)

	for _, args := range []string{"", "null", "{}"} {
		res := call(t, s, toolListFiles, args)
		assert.False(t, res.IsError)
		assert.Equal(t, "Project files:\n---\n"+mainPath+"\n"+servicePath+"\n", resultText(t, res))
	}
}

func TestReadFile(t *testing.T) {
	s, _ := newTestServer(t)

	res := call(t, s, toolReadFile, `{"filePath": "`+mainPath+`"}`)
	assert.False(t, res.IsError)
	assert.Equal(t, "Content of file '"+mainPath+"':\n---\n"+mainContent, resultText(t, res))

	// Path failures are result text, not tool errors
	res = call(t, s, toolReadFile, `{"filePath": "main.ts"}`)
	assert.False(t, res.IsError)
	assert.Equal(t, "Error: malformed file path, a prefix such as '[backend/src]/' is required.", resultText(t, res))
}

func TestSearchArguments(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("DefaultFileTypes", func(t *testing.T) {
		res := call(t, s, toolSearch, `{"query": "bootstrap"}`)
		assert.Equal(t, "Found 1 matches:\n---\n"+mainPath+":2\nbootstrap();", resultText(t, res))
	})

	t.Run("ExplicitEmptyFileTypes", func(t *testing.T) {
		res := call(t, s, toolSearch, `{"query": "bootstrap", "fileTypes": []}`)
		assert.Equal(t, `No code containing "bootstrap" found`, resultText(t, res))
	})

	t.Run("MaxResults", func(t *testing.T) {
		res := call(t, s, toolSearch, `{"query": "user", "maxResults": 2}`)
		assert.Contains(t, resultText(t, res), "Found 2 matches:")
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		res := call(t, s, toolSearch, `{"query": "BOOTSTRAP", "caseSensitive": true}`)
		assert.Equal(t, `No code containing "BOOTSTRAP" found`, resultText(t, res))
	})

	t.Run("Regex", func(t *testing.T) {
		res := call(t, s, toolSearch, `{"query": "boot.*\\(\\)", "useRegex": true}`)
		assert.Contains(t, resultText(t, res), mainPath+":2")
	})
}

func TestReadMultiple(t *testing.T) {
	s, _ := newTestServer(t)

	res := call(t, s, toolReadMultiple, `{"patterns": ["**/*.ts"], "maxFiles": 1}`)
	text := resultText(t, res)
	assert.Contains(t, text, "Batch file contents:\n")
	assert.Contains(t, text, "\n📄 "+mainPath+"\n")
	assert.NotContains(t, text, servicePath)
}

func TestAnalyzeStructure(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("Scoped", func(t *testing.T) {
		text := resultText(t, call(t, s, toolAnalyzeStructure, `{"scope": "frontend", "depth": 1}`))
		assert.Contains(t, text, "\n📁 [frontend/src]\n")
		assert.NotContains(t, text, "[backend/src]")
		assert.Contains(t, text, "  - TypeScript files: 1\n")
	})

	t.Run("DefaultScopeIsAll", func(t *testing.T) {
		text := resultText(t, call(t, s, toolAnalyzeStructure, `{}`))
		assert.Contains(t, text, "[frontend/src]")
		assert.Contains(t, text, "[backend/src]")
	})

	t.Run("UnknownScope", func(t *testing.T) {
		body := errorBody(t, call(t, s, toolAnalyzeStructure, `{"scope": "mobile"}`))
		assert.Equal(t, "scope", body["field"])
		assert.Equal(t, string(ErrCodeInvalidEnum), body["code"])
	})
}

func TestExtractFunctionDefaults(t *testing.T) {
	s, _ := newTestServer(t)

	text := resultText(t, call(t, s, toolExtractFunction,
		`{"filePath": "`+servicePath+`", "functionName": "findOne"}`))
	assert.Contains(t, text, "Lines 10-17\n---\n  // Finds one user by id\n")

	text = resultText(t, call(t, s, toolExtractFunction,
		`{"filePath": "`+servicePath+`", "functionName": "findOne", "includeComments": false}`))
	assert.Contains(t, text, "Lines 11-17\n---\n  async findOne(id: string) {\n")
}

func TestReadSectionDefaults(t *testing.T) {
	s, _ := newTestServer(t)

	text := resultText(t, call(t, s, toolReadSection,
		`{"filePath": "`+mainPath+`", "startLine": 2, "endLine": 9}`))
	assert.Equal(t, "Content of file '"+mainPath+"' lines 2-3:\n---\n2: bootstrap();\n3: ", text)

	text = resultText(t, call(t, s, toolReadSection,
		`{"filePath": "`+mainPath+`", "startLine": 1, "endLine": 3, "showLineNumbers": false}`))
	assert.Equal(t, "Content of file '"+mainPath+"' lines 1-3:\n---\n"+mainContent, text)
}

func TestRecoverFromPanic(t *testing.T) {
	s, diag := newTestServer(t)

	res, err := s.recoverFromPanic("boom_tool", func() (*mcp.CallToolResult, error) {
		panic("kaboom")
	})
	require.NoError(t, err)
	body := errorBody(t, res)
	assert.Equal(t, "boom_tool", body["operation"])
	assert.Contains(t, body["error"], "kaboom")
	assert.Contains(t, diag.String(), "PANIC RECOVERED in boom_tool: kaboom")
}

func TestCancelledRequest(t *testing.T) {
	s, diag := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Name: toolListFiles}}
	res, err := s.GetHandlerForTesting(toolListFiles)(ctx, req)
	require.NoError(t, err)
	body := errorBody(t, res)
	assert.Contains(t, body["error"], context.Canceled.Error())
	assert.Contains(t, diag.String(), "Error in "+toolListFiles)
}

func TestUnknownToolHandler(t *testing.T) {
	s, _ := newTestServer(t)

	body := errorBody(t, call(t, s, "delete_everything", `{}`))
	assert.Equal(t, "unknown tool: delete_everything", body["error"])
}

func TestInMemorySession(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "lps-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, session.Close())
		_ = serverSession.Wait()
	}()

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, session.Ping(ctx, nil))
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)

		names := make([]string, 0, len(tools.Tools))
		for _, tool := range tools.Tools {
			names = append(names, tool.Name)
			assert.NotEmpty(t, tool.Description)
		}
		assert.ElementsMatch(t, ToolNames, names)
	})

	t.Run("CallTool", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      toolReadSection,
			Arguments: map[string]any{"filePath": mainPath, "startLine": 1, "endLine": 1},
		})
		require.NoError(t, err)
		assert.False(t, res.IsError)
		assert.Equal(t, "Content of file '"+mainPath+"' lines 1-1:\n---\n1: import { a.b } from './x';", resultText(t, res))
	})

	t.Run("CallToolMissingArgument", func(t *testing.T) {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      toolReadFile,
			Arguments: map[string]any{},
		})
		if err == nil {
			assert.True(t, res.IsError)
		}
	})
}
