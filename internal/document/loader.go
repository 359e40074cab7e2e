package document

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

var (
	// ErrIO indicates the document could not be read.
	ErrIO = errors.New("document unreadable")
	// ErrEncoding indicates the document is not valid UTF-8 text.
	ErrEncoding = errors.New("document is not valid UTF-8")
)

// Load reads the document at path. The read is the only side effect.
// Fails with ErrIO when the file is missing or unreadable and with
// ErrEncoding when the content is not valid UTF-8.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrIO, err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrEncoding, path)
	}

	return &Document{Name: path, Text: string(data)}, nil
}

// LoadString wraps in-memory text as a Document. The name is used only
// for reporting.
func LoadString(name, text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: %s", ErrEncoding, name)
	}

	return &Document{Name: name, Text: text}, nil
}
