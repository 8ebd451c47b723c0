package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RPCError is a JSON-RPC protocol fault.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewRPCError builds a protocol fault. Data is optional.
func NewRPCError(code int, message string, data any) *RPCError {
	return &RPCError{Code: code, Message: message, Data: data}
}

func parseError(detail string) *RPCError {
	return NewRPCError(mcp.PARSE_ERROR, "Parse error", detail)
}

func methodNotFound(method string) *RPCError {
	return NewRPCError(mcp.METHOD_NOT_FOUND, "Method not found", method)
}

func toolNotFound(name string) *RPCError {
	return NewRPCError(mcp.METHOD_NOT_FOUND, fmt.Sprintf("Tool not found: %s", name), nil)
}

func invalidParams(message string, data any) *RPCError {
	return NewRPCError(mcp.INVALID_PARAMS, message, data)
}

func internalError(detail string) *RPCError {
	return NewRPCError(mcp.INTERNAL_ERROR, "Internal error", detail)
}

// newResult wraps a handler payload for the request id.
func newResult(id json.RawMessage, result any) *Response {
	return &Response{ID: id, Result: result}
}

// newError wraps a protocol fault for the request id. A nil id is sent as null.
func newError(id json.RawMessage, err *RPCError) *Response {
	return &Response{ID: id, Error: err}
}

// Status tags the outcome of a vault operation inside a tool result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ContentItem is the single text item every tool call returns.
type ContentItem struct {
	Type string         `json:"type"`
	Text string         `json:"text"`
	Meta map[string]any `json:"_meta"`
}

// ToolResult is the result payload of a tools/call response.
type ToolResult struct {
	Content []ContentItem `json:"content"`
}

// Outcome is what a tool handler produces. Operation failures are outcomes with
// StatusError, never protocol faults.
type Outcome struct {
	Status   Status
	Text     string
	ExitCode int
	Meta     map[string]any
}

func success(text string, meta map[string]any) Outcome {
	return Outcome{Status: StatusSuccess, Text: text, Meta: meta}
}

func failure(text string, exitCode int, meta map[string]any) Outcome {
	return Outcome{Status: StatusError, Text: text, ExitCode: exitCode, Meta: meta}
}

// toolResult renders an outcome of the named tool as a one-item ToolResult.
func toolResult(tool string, o Outcome) *ToolResult {
	meta := make(map[string]any, len(o.Meta)+3)
	for k, v := range o.Meta {
		meta[k] = v
	}
	meta["operation"] = tool
	meta["status"] = string(o.Status)
	if o.Status == StatusError {
		meta["exit_code"] = o.ExitCode
	}

	return &ToolResult{
		Content: []ContentItem{{
			Type: "text",
			Text: o.Text,
			Meta: meta,
		}},
	}
}
