// Package report defines the snippet-consistency report model: ordered
// findings, per-kind counts, and the pass/fail outcome of a check run.
package report

// FindingKind identifies the consistency issue a finding describes.
type FindingKind string

// Finding kinds.
const (
	// KindDanglingReference is a backticked prose name that resolves to
	// no identifier defined at or before that point in the document.
	KindDanglingReference FindingKind = "dangling-reference"

	// KindUnusedIdentifier is a snippet identifier never mentioned by
	// any prose segment.
	KindUnusedIdentifier FindingKind = "unused-snippet-identifier"
)

// Severity grades a finding.
type Severity string

// Severities, ordered from most to least severe.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one consistency issue located in the document. Findings are
// data, never errors: a run that produces findings still completes.
type Finding struct {
	Kind       FindingKind `json:"kind"                 yaml:"kind"`
	Severity   Severity    `json:"severity"             yaml:"severity"`
	Name       string      `json:"name"                 yaml:"name"`
	Segment    int         `json:"segment"              yaml:"segment"`
	Line       int         `json:"line"                 yaml:"line"`
	Message    string      `json:"message"              yaml:"message"`
	Suggestion string      `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Stats summarizes what one check run scanned.
type Stats struct {
	Lines       int `json:"lines"       yaml:"lines"`
	Segments    int `json:"segments"    yaml:"segments"`
	CodeBlocks  int `json:"code_blocks" yaml:"code_blocks"`
	Identifiers int `json:"identifiers" yaml:"identifiers"`
	References  int `json:"references"  yaml:"references"`
}

// Report is the complete result of one check run. Exactly one of two
// shapes is produced: a completed report (Aborted false, findings
// populated) or an aborted one (Aborted true, AbortReason and AbortLine
// set, no findings).
type Report struct {
	Document string              `json:"document"               yaml:"document"`
	Findings []Finding           `json:"findings"               yaml:"findings"`
	Counts   map[FindingKind]int `json:"counts"                 yaml:"counts"`
	Stats    Stats               `json:"stats"                  yaml:"stats"`
	Passed   bool                `json:"passed"                 yaml:"passed"`
	Aborted  bool                `json:"aborted"                yaml:"aborted"`

	// AbortReason and AbortLine locate the fatal error for aborted runs.
	AbortReason string `json:"abort_reason,omitempty" yaml:"abort_reason,omitempty"`
	AbortLine   int    `json:"abort_line,omitempty"   yaml:"abort_line,omitempty"`
}

// Count returns the number of findings of the given kind.
func (r *Report) Count(kind FindingKind) int {
	return r.Counts[kind]
}

// ErrorCount returns the number of error-severity findings.
func (r *Report) ErrorCount() int {
	count := 0

	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			count++
		}
	}

	return count
}
