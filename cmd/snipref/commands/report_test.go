package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipref/internal/report"
)

func TestReportValidateCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeJSONReport(t, dir, "guide.md")

	var buf bytes.Buffer

	cmd := NewReportCommand()
	cmd.SetArgs([]string{"validate", path})
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "valid")
}

func TestReportValidateCommand_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"document": 42}`), 0o600))

	var buf bytes.Buffer

	cmd := NewReportCommand()
	cmd.SetArgs([]string{"validate", path})
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	require.ErrorIs(t, cmd.Execute(), report.ErrSchemaViolation)
}

func TestReportDecodeCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeBinaryReport(t, dir, "api.md")

	var buf bytes.Buffer

	cmd := NewReportCommand()
	cmd.SetArgs([]string{"decode", path})
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	require.NoError(t, cmd.Execute())

	var rep report.Report

	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, "api.md", rep.Document)
}
