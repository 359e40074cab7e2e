package checker

import (
	"fmt"
	"regexp"
	"strings"

	"snipref/internal/document"
	"snipref/internal/report"
)

// backtickPattern matches inline backticked spans within a prose line.
var backtickPattern = regexp.MustCompile("`([^`\n]+)`")

// Reference is a backticked inline name found in a prose segment.
type Reference struct {
	// Name is the referenced identifier text.
	Name string

	// Segment is the index of the enclosing prose segment.
	Segment int

	// Line is the 1-based document line of the reference.
	Line int
}

// ExtractReferences collects every backticked token of identifier shape
// from the prose segments, in document order. Common English words are
// deliberately not filtered: false positives are accepted over false
// negatives, and severity grouping in the report handles triage.
func ExtractReferences(segments []document.Segment, identPattern *regexp.Regexp) []Reference {
	var refs []Reference

	for segIdx, seg := range segments {
		if seg.IsCode() {
			continue
		}

		line := seg.StartLine - 1

		forEachContentLine(seg.Content, func(text string) {
			line++

			for _, m := range backtickPattern.FindAllStringSubmatch(text, -1) {
				token := strings.TrimSpace(m[1])
				if !identPattern.MatchString(token) {
					continue
				}

				refs = append(refs, Reference{Name: token, Segment: segIdx, Line: line})
			}
		})
	}

	return refs
}

// Validate resolves references against the index. A reference resolves
// iff an identifier with the same name has its first definition at or
// before the reference's segment; anything else is a dangling
// reference. Identifiers never mentioned anywhere in prose become
// unused-snippet-identifier warnings, except parameters: a parameter
// belongs to its function's surface and is only indexed so prose can
// reference it.
func Validate(refs []Reference, ix *Index, suggester *Suggester) []report.Finding {
	var findings []report.Finding

	mentioned := make(map[string]bool, len(refs))

	for _, ref := range refs {
		mentioned[ref.Name] = true

		def, ok := ix.FirstDefinition(ref.Name)
		if ok && def.Segment <= ref.Segment {
			continue
		}

		findings = append(findings, danglingFinding(ref, ok, suggester, ix))
	}

	for _, id := range ix.FirstDefinitions() {
		if mentioned[id.Name] || id.Kind == DeclParameter {
			continue
		}

		findings = append(findings, report.Finding{
			Kind:     report.KindUnusedIdentifier,
			Severity: report.SeverityWarning,
			Name:     id.Name,
			Segment:  id.Segment,
			Line:     id.Line,
			Message:  fmt.Sprintf("%s %q is declared but never referenced in prose", id.Kind, id.Name),
		})
	}

	return findings
}

// danglingFinding builds the finding for one unresolved reference.
func danglingFinding(ref Reference, definedLater bool, suggester *Suggester, ix *Index) report.Finding {
	message := fmt.Sprintf("%q does not resolve to any identifier defined at or before this point", ref.Name)
	if definedLater {
		message = fmt.Sprintf("%q is referenced before its definition", ref.Name)
	}

	finding := report.Finding{
		Kind:     report.KindDanglingReference,
		Severity: report.SeverityError,
		Name:     ref.Name,
		Segment:  ref.Segment,
		Line:     ref.Line,
		Message:  message,
	}

	if suggester != nil && !definedLater {
		finding.Suggestion = suggester.Suggest(ref.Name, ix.Names())
	}

	return finding
}
