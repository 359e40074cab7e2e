package report

import (
	"errors"
	"sort"
)

// FailOn controls which findings fail a run.
type FailOn string

// FailOn policies.
const (
	// FailOnError fails the run on any error-severity finding. Default.
	FailOnError FailOn = "error"
	// FailOnWarning fails the run on any finding at all.
	FailOnWarning FailOn = "warning"
	// FailOnNever always passes completed runs.
	FailOnNever FailOn = "never"
)

// ErrInvalidFailOn indicates an unknown fail-on policy name.
var ErrInvalidFailOn = errors.New("invalid fail-on policy")

// ParseFailOn validates a fail-on policy name. Empty selects the default.
func ParseFailOn(s string) (FailOn, error) {
	switch FailOn(s) {
	case "":
		return FailOnError, nil
	case FailOnError, FailOnWarning, FailOnNever:
		return FailOn(s), nil
	default:
		return "", errors.Join(ErrInvalidFailOn, errors.New(s))
	}
}

// Builder aggregates findings into a Report. Purely a data
// transformation: no I/O happens here.
type Builder struct {
	document string
	failOn   FailOn
	findings []Finding
	stats    Stats
}

// NewBuilder creates a Builder for the named document.
func NewBuilder(document string, failOn FailOn) *Builder {
	return &Builder{
		document: document,
		failOn:   failOn,
		findings: []Finding{},
	}
}

// Add records one finding.
func (b *Builder) Add(f Finding) {
	b.findings = append(b.findings, f)
}

// SetStats records the run scan statistics.
func (b *Builder) SetStats(stats Stats) {
	b.stats = stats
}

// Build produces the completed report. Findings are ordered by document
// appearance: segment index, then line, then name for ties on the same
// line. Calling Build twice yields identical reports.
func (b *Builder) Build() *Report {
	findings := make([]Finding, len(b.findings))
	copy(findings, b.findings)

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Segment != findings[j].Segment {
			return findings[i].Segment < findings[j].Segment
		}

		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}

		return findings[i].Name < findings[j].Name
	})

	counts := make(map[FindingKind]int)
	for _, f := range findings {
		counts[f.Kind]++
	}

	return &Report{
		Document: b.document,
		Findings: findings,
		Counts:   counts,
		Stats:    b.stats,
		Passed:   b.passed(findings),
	}
}

// passed applies the fail-on policy to the collected findings.
func (b *Builder) passed(findings []Finding) bool {
	switch b.failOn {
	case FailOnNever:
		return true
	case FailOnWarning:
		return len(findings) == 0
	default:
		for _, f := range findings {
			if f.Severity == SeverityError {
				return false
			}
		}

		return true
	}
}

// NewAborted produces the report shape for a fatally failed run. The
// reason and line come from the loader or extractor error; no findings
// are ever attached.
func NewAborted(document, reason string, line int) *Report {
	return &Report{
		Document:    document,
		Findings:    []Finding{},
		Counts:      map[FindingKind]int{},
		Aborted:     true,
		AbortReason: reason,
		AbortLine:   line,
	}
}
