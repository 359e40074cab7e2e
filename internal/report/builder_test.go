package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipref/internal/report"
)

func dangling(name string, segment, line int) report.Finding {
	return report.Finding{
		Kind:     report.KindDanglingReference,
		Severity: report.SeverityError,
		Name:     name,
		Segment:  segment,
		Line:     line,
		Message:  "unresolved reference",
	}
}

func unused(name string, segment, line int) report.Finding {
	return report.Finding{
		Kind:     report.KindUnusedIdentifier,
		Severity: report.SeverityWarning,
		Name:     name,
		Segment:  segment,
		Line:     line,
		Message:  "never referenced",
	}
}

func TestBuilder_OrdersByAppearance(t *testing.T) {
	t.Parallel()

	builder := report.NewBuilder("doc.md", report.FailOnError)
	builder.Add(dangling("zeta", 4, 40))
	builder.Add(dangling("alpha", 0, 2))
	builder.Add(unused("mid", 2, 20))
	builder.Add(dangling("beta", 0, 2))

	r := builder.Build()

	require.Len(t, r.Findings, 4)
	assert.Equal(t, "alpha", r.Findings[0].Name)
	assert.Equal(t, "beta", r.Findings[1].Name)
	assert.Equal(t, "mid", r.Findings[2].Name)
	assert.Equal(t, "zeta", r.Findings[3].Name)
}

func TestBuilder_Counts(t *testing.T) {
	t.Parallel()

	builder := report.NewBuilder("doc.md", report.FailOnError)
	builder.Add(dangling("a", 0, 1))
	builder.Add(dangling("b", 0, 1))
	builder.Add(unused("c", 1, 3))

	r := builder.Build()

	assert.Equal(t, 2, r.Count(report.KindDanglingReference))
	assert.Equal(t, 1, r.Count(report.KindUnusedIdentifier))
	assert.Equal(t, 2, r.ErrorCount())
}

func TestBuilder_FailOnPolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		failOn   report.FailOn
		findings []report.Finding
		passed   bool
	}{
		{name: "error policy passes on warnings", failOn: report.FailOnError, findings: []report.Finding{unused("x", 0, 1)}, passed: true},
		{name: "error policy fails on errors", failOn: report.FailOnError, findings: []report.Finding{dangling("x", 0, 1)}, passed: false},
		{name: "warning policy fails on warnings", failOn: report.FailOnWarning, findings: []report.Finding{unused("x", 0, 1)}, passed: false},
		{name: "never policy always passes", failOn: report.FailOnNever, findings: []report.Finding{dangling("x", 0, 1)}, passed: true},
		{name: "no findings passes", failOn: report.FailOnWarning, findings: nil, passed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			builder := report.NewBuilder("doc.md", tt.failOn)
			for _, f := range tt.findings {
				builder.Add(f)
			}

			assert.Equal(t, tt.passed, builder.Build().Passed)
		})
	}
}

func TestParseFailOn(t *testing.T) {
	t.Parallel()

	got, err := report.ParseFailOn("")
	require.NoError(t, err)
	assert.Equal(t, report.FailOnError, got)

	got, err = report.ParseFailOn("never")
	require.NoError(t, err)
	assert.Equal(t, report.FailOnNever, got)

	_, err = report.ParseFailOn("sometimes")
	require.ErrorIs(t, err, report.ErrInvalidFailOn)
}

func TestNewAborted(t *testing.T) {
	t.Parallel()

	r := report.NewAborted("doc.md", "unterminated code fence", 7)

	assert.True(t, r.Aborted)
	assert.False(t, r.Passed)
	assert.Equal(t, 7, r.AbortLine)
	assert.Empty(t, r.Findings)
}

func TestBuilder_BuildIsIdempotent(t *testing.T) {
	t.Parallel()

	builder := report.NewBuilder("doc.md", report.FailOnError)
	builder.Add(dangling("a", 1, 5))
	builder.Add(unused("b", 2, 9))

	assert.Equal(t, builder.Build(), builder.Build())
}
