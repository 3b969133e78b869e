package mcp

import (
	"context"

	"github.com/standardbeagle/lps/internal/navigator"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadFileParams defines parameters for read_file_content
type ReadFileParams struct {
	// FilePath is a prefixed path such as "[backend/src]/main.ts"
	FilePath string `json:"filePath"`
}

// SearchParams defines parameters for search_code_content
type SearchParams struct {
	Query string `json:"query"`

	// FileTypes filters by extension. Absent means the configured default
	// set; an explicit empty list matches nothing.
	FileTypes []string `json:"fileTypes,omitempty"`

	MaxResults    *int `json:"maxResults,omitempty"`
	CaseSensitive bool `json:"caseSensitive,omitempty"`
	UseRegex      bool `json:"useRegex,omitempty"`
	ContextLines  int  `json:"contextLines,omitempty"`
}

// ReadMultipleParams defines parameters for read_multiple_files
type ReadMultipleParams struct {
	Patterns []string `json:"patterns"`
	MaxFiles *int     `json:"maxFiles,omitempty"`
}

// StructureParams defines parameters for analyze_project_structure
type StructureParams struct {
	Scope string `json:"scope,omitempty"` // frontend, backend or all
	Depth *int   `json:"depth,omitempty"`
}

// ExtractParams defines parameters for extract_function_definition
type ExtractParams struct {
	FilePath          string `json:"filePath"`
	FunctionName      string `json:"functionName"`
	IncludeComments   *bool  `json:"includeComments,omitempty"`
	IncludeDecorators *bool  `json:"includeDecorators,omitempty"`
}

// SectionParams defines parameters for read_file_section
type SectionParams struct {
	FilePath        string `json:"filePath"`
	StartLine       *int   `json:"startLine"`
	EndLine         *int   `json:"endLine"`
	ShowLineNumbers *bool  `json:"showLineNumbers,omitempty"`
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (s *Server) handleListFiles(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolListFiles, func() (*mcp.CallToolResult, error) {
		text, err := s.nav.ListFiles(ctx)
		if err != nil {
			return nil, err
		}
		return createTextResponse(text)
	})
}

func (s *Server) handleReadFile(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolReadFile, func() (*mcp.CallToolResult, error) {
		var params ReadFileParams
		if err := decodeArguments(req.Params.Arguments, &params); err != nil {
			return createErrorResponse(toolReadFile, err)
		}
		if params.FilePath == "" {
			return createErrorResponse(toolReadFile, requiredError("filePath"))
		}

		return createTextResponse(s.nav.ReadFile(ctx, params.FilePath))
	})
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolSearch, func() (*mcp.CallToolResult, error) {
		var params SearchParams
		if err := decodeArguments(req.Params.Arguments, &params); err != nil {
			return createErrorResponse(toolSearch, err)
		}
		if params.Query == "" {
			return createErrorResponse(toolSearch, requiredError("query"))
		}

		text, err := s.nav.Search(ctx, navigator.SearchRequest{
			Query:         params.Query,
			FileTypes:     params.FileTypes,
			MaxResults:    intOr(params.MaxResults, s.cfg.Search.MaxResults),
			CaseSensitive: params.CaseSensitive,
			UseRegex:      params.UseRegex,
			ContextLines:  params.ContextLines,
		})
		if err != nil {
			return nil, err
		}
		return createTextResponse(text)
	})
}

func (s *Server) handleReadMultiple(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolReadMultiple, func() (*mcp.CallToolResult, error) {
		var params ReadMultipleParams
		if err := decodeArguments(req.Params.Arguments, &params); err != nil {
			return createErrorResponse(toolReadMultiple, err)
		}
		if params.Patterns == nil {
			return createErrorResponse(toolReadMultiple, requiredError("patterns"))
		}

		text, err := s.nav.ReadMultiple(ctx, params.Patterns, intOr(params.MaxFiles, s.cfg.Batch.MaxFiles))
		if err != nil {
			return nil, err
		}
		return createTextResponse(text)
	})
}

func (s *Server) handleAnalyzeStructure(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolAnalyzeStructure, func() (*mcp.CallToolResult, error) {
		var params StructureParams
		if err := decodeArguments(req.Params.Arguments, &params); err != nil {
			return createErrorResponse(toolAnalyzeStructure, err)
		}
		if params.Scope == "" {
			params.Scope = "all"
		}
		if err := validateScope(params.Scope); err != nil {
			return createErrorResponse(toolAnalyzeStructure, err)
		}

		text, err := s.nav.AnalyzeStructure(ctx, params.Scope, intOr(params.Depth, s.cfg.Structure.Depth))
		if err != nil {
			return nil, err
		}
		return createTextResponse(text)
	})
}

func (s *Server) handleExtractFunction(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolExtractFunction, func() (*mcp.CallToolResult, error) {
		var params ExtractParams
		if err := decodeArguments(req.Params.Arguments, &params); err != nil {
			return createErrorResponse(toolExtractFunction, err)
		}
		if params.FilePath == "" {
			return createErrorResponse(toolExtractFunction, requiredError("filePath"))
		}
		if params.FunctionName == "" {
			return createErrorResponse(toolExtractFunction, requiredError("functionName"))
		}

		return createTextResponse(s.nav.ExtractFunction(ctx, navigator.ExtractRequest{
			FilePath:          params.FilePath,
			FunctionName:      params.FunctionName,
			IncludeComments:   boolOr(params.IncludeComments, true),
			IncludeDecorators: boolOr(params.IncludeDecorators, true),
		}))
	})
}

func (s *Server) handleReadSection(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolReadSection, func() (*mcp.CallToolResult, error) {
		var params SectionParams
		if err := decodeArguments(req.Params.Arguments, &params); err != nil {
			return createErrorResponse(toolReadSection, err)
		}
		switch {
		case params.FilePath == "":
			return createErrorResponse(toolReadSection, requiredError("filePath"))
		case params.StartLine == nil:
			return createErrorResponse(toolReadSection, requiredError("startLine"))
		case params.EndLine == nil:
			return createErrorResponse(toolReadSection, requiredError("endLine"))
		}

		return createTextResponse(s.nav.ReadSection(ctx, navigator.SectionRequest{
			FilePath:        params.FilePath,
			StartLine:       *params.StartLine,
			EndLine:         *params.EndLine,
			ShowLineNumbers: boolOr(params.ShowLineNumbers, true),
		}))
	})
}
