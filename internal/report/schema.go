package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation indicates a serialized report does not match the
// report schema.
var ErrSchemaViolation = errors.New("report schema violation")

// Schema is the JSON schema for serialized reports. External consumers
// can validate saved reports against it without running a check.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "snipref report",
  "type": "object",
  "required": ["document", "findings", "counts", "stats", "passed", "aborted"],
  "properties": {
    "document": {"type": "string"},
    "passed": {"type": "boolean"},
    "aborted": {"type": "boolean"},
    "abort_reason": {"type": "string"},
    "abort_line": {"type": "integer", "minimum": 0},
    "counts": {
      "type": "object",
      "additionalProperties": {"type": "integer", "minimum": 0}
    },
    "stats": {
      "type": "object",
      "required": ["lines", "segments", "code_blocks", "identifiers", "references"],
      "properties": {
        "lines": {"type": "integer", "minimum": 0},
        "segments": {"type": "integer", "minimum": 0},
        "code_blocks": {"type": "integer", "minimum": 0},
        "identifiers": {"type": "integer", "minimum": 0},
        "references": {"type": "integer", "minimum": 0}
      }
    },
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "severity", "name", "segment", "line", "message"],
        "properties": {
          "kind": {"enum": ["dangling-reference", "unused-snippet-identifier"]},
          "severity": {"enum": ["error", "warning"]},
          "name": {"type": "string", "minLength": 1},
          "segment": {"type": "integer", "minimum": 0},
          "line": {"type": "integer", "minimum": 0},
          "message": {"type": "string"},
          "suggestion": {"type": "string"}
        }
      }
    }
  }
}`

// ValidateJSON checks that data is a schema-conformant serialized
// report. Violations are reported with their JSON paths.
func ValidateJSON(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(Schema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate report: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
}
