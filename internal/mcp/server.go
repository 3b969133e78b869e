// Package mcp exposes the navigator over the Model Context Protocol.
// Every tool returns one text block; argument problems come back as an
// isError result carrying a JSON description.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/standardbeagle/lps/internal/config"
	lpsdebug "github.com/standardbeagle/lps/internal/debug"
	"github.com/standardbeagle/lps/internal/navigator"
	"github.com/standardbeagle/lps/internal/version"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names
const (
	toolListFiles        = "list_project_files"
	toolReadFile         = "read_file_content"
	toolSearch           = "search_code_content"
	toolReadMultiple     = "read_multiple_files"
	toolAnalyzeStructure = "analyze_project_structure"
	toolExtractFunction  = "extract_function_definition"
	toolReadSection      = "read_file_section"
)

// ToolNames lists the registered tools in registration order
var ToolNames = []string{
	toolListFiles,
	toolReadFile,
	toolSearch,
	toolReadMultiple,
	toolAnalyzeStructure,
	toolExtractFunction,
	toolReadSection,
}

type Server struct {
	server           *mcp.Server
	nav              *navigator.Navigator
	cfg              *config.Config
	diagnosticLogger *lpsdebug.DiagnosticLogger
}

// NewServer creates an MCP server over nav. Diagnostics go to logger, which
// must not write to stdout in stdio mode; nil discards them.
func NewServer(nav *navigator.Navigator, logger *lpsdebug.DiagnosticLogger) (*Server, error) {
	if nav == nil {
		return nil, errors.New("navigator is required")
	}
	if logger == nil {
		logger = lpsdebug.NoOpLogger
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    version.Name,
			Version: version.Version,
		}, nil),
		nav:              nav,
		cfg:              nav.Config(),
		diagnosticLogger: logger,
	}
	s.registerTools()
	lpsdebug.LogMCP("registered %d tools\n", len(ToolNames))

	logger.Printf("MCP server initialized with %d roots", nav.Registry().Len())
	for _, e := range nav.Registry().Entries() {
		logger.Printf("  %s -> %s", e.Prefix, e.Root)
	}
	return s, nil
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        toolListFiles,
		Description: "Recursively list the files of every configured source root as prefixed paths.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleListFiles)

	s.server.AddTool(&mcp.Tool{
		Name:        toolReadFile,
		Description: "Read a file. The path must carry its root prefix, e.g. '[backend/src]/main.ts'.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"filePath": {
					Type:        "string",
					Description: "Prefixed file path, e.g. '[backend/src]/main.ts'",
				},
			},
			Required: []string{"filePath"},
		},
	}, s.handleReadFile)

	s.server.AddTool(&mcp.Tool{
		Name:        toolSearch,
		Description: "Search file contents across every root, literally or with a regular expression.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Text or regular expression to search for",
				},
				"fileTypes": {
					Type:        "array",
					Description: "Extension filter, e.g. ['.ts', '.tsx', '.js']",
					Items:       &jsonschema.Schema{Type: "string"},
				},
				"maxResults": {
					Type:        "integer",
					Description: fmt.Sprintf("Maximum number of matches (default: %d)", s.cfg.Search.MaxResults),
				},
				"caseSensitive": {
					Type:        "boolean",
					Description: "Match case (default: false)",
				},
				"useRegex": {
					Type:        "boolean",
					Description: "Treat query as a regular expression (default: false)",
				},
				"contextLines": {
					Type:        "integer",
					Description: "Lines of context around each match (default: 0)",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleSearch)

	s.server.AddTool(&mcp.Tool{
		Name:        toolReadMultiple,
		Description: "Read every file matching glob patterns under every root, e.g. '**/*.service.ts'.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"patterns": {
					Type:        "array",
					Description: "Root-relative glob patterns",
					Items:       &jsonschema.Schema{Type: "string"},
				},
				"maxFiles": {
					Type:        "integer",
					Description: fmt.Sprintf("Maximum number of files to read (default: %d)", s.cfg.Batch.MaxFiles),
				},
			},
			Required: []string{"patterns"},
		},
	}, s.handleReadMultiple)

	s.server.AddTool(&mcp.Tool{
		Name:        toolAnalyzeStructure,
		Description: "Render the directory tree and file statistics of the matching roots.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"scope": {
					Type:        "string",
					Description: "Roots to analyze, matched against the prefix (default: all)",
					Enum:        []any{"frontend", "backend", "all"},
				},
				"depth": {
					Type:        "integer",
					Description: fmt.Sprintf("Maximum tree depth (default: %d)", s.cfg.Structure.Depth),
				},
			},
		},
	}, s.handleAnalyzeStructure)

	s.server.AddTool(&mcp.Tool{
		Name:        toolExtractFunction,
		Description: "Extract a function or method definition from a file by name.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"filePath": {
					Type:        "string",
					Description: "Prefixed file path",
				},
				"functionName": {
					Type:        "string",
					Description: "Function or method name",
				},
				"includeComments": {
					Type:        "boolean",
					Description: "Include the comment block above the definition (default: true)",
				},
				"includeDecorators": {
					Type:        "boolean",
					Description: "Include decorators above the definition (default: true)",
				},
			},
			Required: []string{"filePath", "functionName"},
		},
	}, s.handleExtractFunction)

	s.server.AddTool(&mcp.Tool{
		Name:        toolReadSection,
		Description: "Read a line range of a file. The range is clamped to the file.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"filePath": {
					Type:        "string",
					Description: "Prefixed file path",
				},
				"startLine": {
					Type:        "integer",
					Description: "First line, 1-based",
				},
				"endLine": {
					Type:        "integer",
					Description: "Last line, inclusive",
				},
				"showLineNumbers": {
					Type:        "boolean",
					Description: "Prefix each line with its number (default: true)",
				},
			},
			Required: []string{"filePath", "startLine", "endLine"},
		},
	}, s.handleReadSection)
}

// recoverFromPanic runs handler, turning a panic or returned error into an
// isError result
func (s *Server) recoverFromPanic(operation string, handler func() (*mcp.CallToolResult, error)) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.diagnosticLogger.Errorf("PANIC RECOVERED in %s: %v", operation, r)
			s.diagnosticLogger.Printf("Stack trace: %s", debug.Stack())
			result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
		}
	}()

	result, err = handler()
	if err != nil {
		s.diagnosticLogger.Errorf("Error in %s: %v", operation, err)
		return createErrorResponse(operation, err)
	}
	return result, nil
}

// Start serves the protocol on stdin/stdout until ctx ends or the client
// disconnects
func (s *Server) Start(ctx context.Context) error {
	s.diagnosticLogger.Printf("Starting MCP server with stdio transport")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves one session over transport; tests pair it with an
// in-memory client transport
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

// Shutdown logs the end of the session. The server holds no background
// resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.diagnosticLogger.Printf("MCP server shutdown complete")
	return nil
}

// GetHandlerForTesting returns the handler registered under toolName
func (s *Server) GetHandlerForTesting(toolName string) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch toolName {
	case toolListFiles:
		return s.handleListFiles
	case toolReadFile:
		return s.handleReadFile
	case toolSearch:
		return s.handleSearch
	case toolReadMultiple:
		return s.handleReadMultiple
	case toolAnalyzeStructure:
		return s.handleAnalyzeStructure
	case toolExtractFunction:
		return s.handleExtractFunction
	case toolReadSection:
		return s.handleReadSection
	default:
		return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return createErrorResponse("GetHandlerForTesting", fmt.Errorf("unknown tool: %s", toolName))
		}
	}
}
