// Package document loads documentation sources and splits them into an
// ordered sequence of prose and fenced-code segments.
package document

// SegmentKind identifies the type of a document segment.
type SegmentKind string

// Segment kinds.
const (
	// KindProse is a span of narrative text between code fences.
	KindProse SegmentKind = "prose"
	// KindCode is a fenced code block.
	KindCode SegmentKind = "code"
)

// Segment is a contiguous span of a document. Segments are produced in
// document order and do not outlive a single check run.
type Segment struct {
	// Kind is prose or code.
	Kind SegmentKind

	// Raw is the exact source span, fence lines included for code
	// segments. Concatenating Raw over all segments reproduces the
	// document text byte for byte.
	Raw string

	// Content is the segment body. For code segments it excludes the
	// fence lines; for prose segments it equals Raw.
	Content string

	// Lang is the language tag declared on the opening fence.
	// Empty when no tag was given.
	Lang string

	// DetectedLang is the language detected from the block content when
	// no tag was declared. Informational only.
	DetectedLang string

	// StartLine and EndLine are 1-based line numbers of the span,
	// inclusive. For code segments StartLine is the opening fence line.
	StartLine int
	EndLine   int
}

// IsCode reports whether the segment is a fenced code block.
func (s Segment) IsCode() bool {
	return s.Kind == KindCode
}

// Document is one loaded documentation source. Immutable once loaded.
type Document struct {
	// Name is the source path, or a caller-supplied label for in-memory
	// documents.
	Name string

	// Text is the full document text.
	Text string
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	if d.Text == "" {
		return 0
	}

	count := 1

	for _, r := range d.Text {
		if r == '\n' {
			count++
		}
	}

	if d.Text[len(d.Text)-1] == '\n' {
		count--
	}

	return count
}
