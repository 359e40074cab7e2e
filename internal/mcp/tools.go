package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"snipref/internal/checker"
)

// Tool names.
const (
	// ToolNameCheck is the inline-text check tool.
	ToolNameCheck = "snipref_check"
	// ToolNameCheckPath is the on-disk document check tool.
	ToolNameCheckPath = "snipref_check_path"
)

// Tool descriptions.
const (
	checkToolDescription = "Check documentation text for snippet consistency: " +
		"backticked identifiers in prose must resolve to names declared in a " +
		"code block at or before that point. Returns the full report as JSON."

	checkPathToolDescription = "Check a documentation file on disk for snippet " +
		"consistency. Returns the full report as JSON."
)

// MaxTextInputBytes caps inline document size for the check tool.
const MaxTextInputBytes = 4 << 20

// Input validation errors.
var (
	// ErrEmptyText indicates the text parameter is empty.
	ErrEmptyText = errors.New("text parameter is required and must not be empty")
	// ErrTextTooLarge indicates the text input exceeds the size limit.
	ErrTextTooLarge = errors.New("text input exceeds maximum size")
	// ErrEmptyPath indicates the path parameter is empty.
	ErrEmptyPath = errors.New("path parameter is required and must not be empty")
	// ErrPathNotAbsolute indicates the path is not absolute.
	ErrPathNotAbsolute = errors.New("path must be an absolute path")
)

// Input types (auto-generate JSON schemas via struct tags).

// CheckInput is the input schema for the snipref_check tool.
type CheckInput struct {
	Name string `json:"name,omitempty" jsonschema:"optional document name used in the report (default: inline)"`
	Text string `json:"text"           jsonschema:"documentation text to check"`
}

// CheckPathInput is the input schema for the snipref_check_path tool.
type CheckPathInput struct {
	Path string `json:"path" jsonschema:"absolute path to a documentation file"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// defaultInlineName names inline documents in reports when the caller
// gives none.
const defaultInlineName = "inline"

// handleCheck processes snipref_check tool calls.
func (s *Server) handleCheck(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input CheckInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateTextInput(input.Text)
	if err != nil {
		return errorResult(err)
	}

	c, err := checker.New(s.cfg)
	if err != nil {
		return errorResult(fmt.Errorf("create checker: %w", err))
	}

	name := input.Name
	if name == "" {
		name = defaultInlineName
	}

	// Aborted runs are data for the caller, not tool failures: the
	// report carries the abort reason and line.
	result, _ := c.CheckText(name, input.Text)

	return jsonResult(result)
}

// handleCheckPath processes snipref_check_path tool calls.
func (s *Server) handleCheckPath(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input CheckPathInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validatePathInput(input.Path)
	if err != nil {
		return errorResult(err)
	}

	c, err := checker.New(s.cfg)
	if err != nil {
		return errorResult(fmt.Errorf("create checker: %w", err))
	}

	result, _ := c.CheckPath(input.Path)

	return jsonResult(result)
}

// validateTextInput checks inline text constraints.
func validateTextInput(text string) error {
	if text == "" {
		return ErrEmptyText
	}

	if len(text) > MaxTextInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTextTooLarge, len(text), MaxTextInputBytes)
	}

	return nil
}

// validatePathInput checks path constraints.
func validatePathInput(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
	}

	return nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
