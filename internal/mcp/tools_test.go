package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipref/internal/checker"
	"snipref/internal/report"
)

const toolFixture = "Call `setup` before `teardown`.\n" +
	"```js\n" +
	"function setup() {}\n" +
	"function teardown() {}\n" +
	"```\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	return NewServer(ServerDeps{
		Logger:        slog.Default(),
		CheckerConfig: checker.DefaultConfig(),
	})
}

func decodeReport(t *testing.T, output ToolOutput) *report.Report {
	t.Helper()

	data, err := json.Marshal(output.Data)
	require.NoError(t, err)

	var rep report.Report

	require.NoError(t, json.Unmarshal(data, &rep))

	return &rep
}

func TestHandleCheck_DanglingReference(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	result, output, err := server.handleCheck(
		context.Background(), nil, CheckInput{Text: toolFixture},
	)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	rep := decodeReport(t, output)
	assert.Equal(t, "inline", rep.Document)
	assert.False(t, rep.Passed)
	require.Len(t, rep.Findings, 2)
	assert.Equal(t, report.KindDanglingReference, rep.Findings[0].Kind)
	assert.Equal(t, report.KindDanglingReference, rep.Findings[1].Kind)
}

func TestHandleCheck_CleanDocument(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	text := "```js\nfunction setup() {}\n```\n\nCall `setup` first.\n"

	_, output, err := server.handleCheck(
		context.Background(), nil, CheckInput{Text: text, Name: "guide.md"},
	)
	require.NoError(t, err)

	rep := decodeReport(t, output)
	assert.Equal(t, "guide.md", rep.Document)
	assert.True(t, rep.Passed)
	assert.Empty(t, rep.Findings)
}

func TestHandleCheck_MalformedDocumentAborts(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	result, output, err := server.handleCheck(
		context.Background(), nil, CheckInput{Text: "intro\n```js\nnever closed\n"},
	)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	rep := decodeReport(t, output)
	assert.True(t, rep.Aborted)
	assert.Equal(t, 2, rep.AbortLine)
}

func TestHandleCheck_EmptyText(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	result, _, err := server.handleCheck(
		context.Background(), nil, CheckInput{},
	)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestHandleCheck_TextTooLarge(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	result, _, err := server.handleCheck(
		context.Background(), nil,
		CheckInput{Text: strings.Repeat("a", MaxTextInputBytes+1)},
	)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCheckPath(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(toolFixture), 0o600))

	result, output, err := server.handleCheckPath(
		context.Background(), nil, CheckPathInput{Path: path},
	)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	rep := decodeReport(t, output)
	assert.Equal(t, path, rep.Document)
	assert.Len(t, rep.Findings, 2)
}

func TestHandleCheckPath_Validation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "relative path", path: "docs/guide.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, _, err := server.handleCheckPath(
				context.Background(), nil, CheckPathInput{Path: tt.path},
			)
			require.NoError(t, err)
			assert.True(t, result.IsError)
		})
	}
}
