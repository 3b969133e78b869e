package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// createTextResponse wraps an operation result in a single text block
func createTextResponse(text string) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil
}

// createJSONResponse creates a standardized JSON response for MCP tools
func createJSONResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %v", err)
	}
	return createTextResponse(string(content))
}

// createErrorResponse creates a standardized error response for MCP tools
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	return createSmartErrorResponse(operation, err, nil)
}

// createSmartErrorResponse adds the failing field and a usage example when
// err is a ValidationError
func createSmartErrorResponse(operation string, err error, context map[string]interface{}) (*mcp.CallToolResult, error) {
	errorData := map[string]interface{}{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		errorData["field"] = ve.Field
		errorData["code"] = ve.Code
	}
	if example, ok := toolExamples[operation]; ok {
		errorData["example"] = example
	}
	if len(context) > 0 {
		errorData["context"] = context
	}

	response, marshalErr := createJSONResponse(errorData)
	if marshalErr != nil {
		return nil, marshalErr
	}

	// Tool errors go in the result, not as a protocol-level error
	response.IsError = true
	return response, nil
}

var toolExamples = map[string]string{
	toolReadFile:         `{"filePath": "[backend/src]/app.ts"}`,
	toolSearch:           `{"query": "useState", "fileTypes": [".tsx"], "maxResults": 20}`,
	toolReadMultiple:     `{"patterns": ["**/*.service.ts"], "maxFiles": 10}`,
	toolAnalyzeStructure: `{"scope": "frontend", "depth": 2}`,
	toolExtractFunction:  `{"filePath": "[backend/src]/user.service.ts", "functionName": "findOne"}`,
	toolReadSection:      `{"filePath": "[backend/src]/app.ts", "startLine": 10, "endLine": 40}`,
}
