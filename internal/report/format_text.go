package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	maxMessageWidth = 60
	truncateSuffix  = "..."
)

// WriteText writes a human-readable rendering of the report: a findings
// table followed by a scan summary and the pass/fail verdict.
func WriteText(r *Report, w io.Writer, noColor bool) error {
	paint := newPainter(noColor)

	_, err := fmt.Fprintf(w, "%s\n", paint.header(r.Document))
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	if r.Aborted {
		return writeAborted(r, w, paint)
	}

	if len(r.Findings) > 0 {
		_, err = fmt.Fprintf(w, "%s\n", renderFindingsTable(r, paint))
		if err != nil {
			return fmt.Errorf("write text report: %w", err)
		}
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n", summaryLine(r), paint.verdict(r.Passed))
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

// writeAborted renders the single fatal error of an aborted run.
func writeAborted(r *Report, w io.Writer, paint *painter) error {
	_, err := fmt.Fprintf(w, "%s %s (line %d)\n", paint.severity(SeverityError), r.AbortReason, r.AbortLine)
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

// renderFindingsTable builds the findings table in appearance order.
func renderFindingsTable(r *Report, paint *painter) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"LINE", "SEVERITY", "KIND", "NAME", "MESSAGE"})

	for _, f := range r.Findings {
		tbl.AppendRow(table.Row{
			f.Line,
			paint.severity(f.Severity),
			string(f.Kind),
			f.Name,
			findingMessage(f),
		})
	}

	tbl.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%s findings", humanize.Comma(int64(len(r.Findings))))})

	return tbl.Render()
}

// findingMessage returns the finding message with an attached
// suggestion, truncated for table display. Truncation counts runes so
// multi-byte identifiers are never split mid-sequence.
func findingMessage(f Finding) string {
	msg := f.Message
	if f.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", f.Suggestion)
	}

	runes := []rune(msg)
	if len(runes) > maxMessageWidth {
		return string(runes[:maxMessageWidth-len(truncateSuffix)]) + truncateSuffix
	}

	return msg
}

// summaryLine produces the one-line scan summary.
func summaryLine(r *Report) string {
	return fmt.Sprintf(
		"scanned %s lines, %d segments (%d code blocks), %d identifiers, %d references",
		humanize.Comma(int64(r.Stats.Lines)),
		r.Stats.Segments,
		r.Stats.CodeBlocks,
		r.Stats.Identifiers,
		r.Stats.References,
	)
}

// painter colorizes text output. With noColor set every method returns
// its input unchanged.
type painter struct {
	errorC   *color.Color
	warningC *color.Color
	passC    *color.Color
	headerC  *color.Color
	noColor  bool
}

// newPainter creates a painter honoring the no-color flag.
func newPainter(noColor bool) *painter {
	return &painter{
		errorC:   color.New(color.FgRed, color.Bold),
		warningC: color.New(color.FgYellow),
		passC:    color.New(color.FgGreen, color.Bold),
		headerC:  color.New(color.Bold),
		noColor:  noColor,
	}
}

// severity renders a severity label.
func (p *painter) severity(s Severity) string {
	label := string(s)
	if p.noColor {
		return label
	}

	if s == SeverityError {
		return p.errorC.Sprint(label)
	}

	return p.warningC.Sprint(label)
}

// header renders the document name heading.
func (p *painter) header(document string) string {
	heading := fmt.Sprintf("=== %s ===", document)
	if p.noColor {
		return heading
	}

	return p.headerC.Sprint(heading)
}

// verdict renders the final pass/fail line.
func (p *painter) verdict(passed bool) string {
	if passed {
		if p.noColor {
			return "PASS"
		}

		return p.passC.Sprint("PASS")
	}

	if p.noColor {
		return "FAIL"
	}

	return p.errorC.Sprint("FAIL")
}
