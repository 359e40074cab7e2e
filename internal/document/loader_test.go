package document_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipref/internal/document"
)

func TestLoad_ReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o600))

	doc, err := document.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Name)
	assert.Equal(t, "hello\n", doc.Text)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := document.Load(filepath.Join(t.TempDir(), "absent.md"))
	require.ErrorIs(t, err, document.ErrIO)
}

func TestLoad_InvalidEncoding(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x41}, 0o600))

	_, err := document.Load(path)
	require.ErrorIs(t, err, document.ErrEncoding)
}

func TestLoadString_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := document.LoadString("inline", string([]byte{0xc3, 0x28}))
	require.ErrorIs(t, err, document.ErrEncoding)
}

func TestLoadString_Valid(t *testing.T) {
	t.Parallel()

	doc, err := document.LoadString("inline", "some text")
	require.NoError(t, err)
	assert.Equal(t, "inline", doc.Name)
}

func TestDocument_LineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single line no newline", text: "abc", want: 1},
		{name: "single line with newline", text: "abc\n", want: 1},
		{name: "three lines", text: "a\nb\nc\n", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := &document.Document{Name: "t", Text: tt.text}
			assert.Equal(t, tt.want, doc.LineCount())
		})
	}
}
