package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects a report serialization.
type Format string

// Output formats.
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatBinary Format = "binary"
)

// ErrUnknownFormat indicates an unrecognized output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name. Empty selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatBinary:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// WriteOptions tunes report serialization.
type WriteOptions struct {
	// NoColor disables ANSI colors in text output.
	NoColor bool

	// Compress enables lz4 payload compression for binary output.
	Compress bool
}

// Write serializes the report in the given format.
func Write(r *Report, format Format, w io.Writer, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(r, w)
	case FormatYAML:
		return WriteYAML(r, w)
	case FormatBinary:
		return EncodeEnvelope(r, w, opts.Compress)
	case FormatText:
		return WriteText(r, w, opts.NoColor)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteJSON writes the indented JSON serialization of the report.
func WriteJSON(r *Report, w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// WriteYAML writes the YAML serialization of the report.
func WriteYAML(r *Report, w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
