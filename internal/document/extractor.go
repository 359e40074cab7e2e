package document

import (
	"errors"
	"fmt"
	"strings"
)

// minFenceLength is the minimum number of fence characters that open or
// close a code block.
const minFenceLength = 3

// defaultFenceChars are the characters recognized as fence delimiters.
const defaultFenceChars = "`~"

// ErrMalformedDocument indicates a code fence was opened but never closed.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedError describes an unterminated code fence. It unwraps to
// ErrMalformedDocument.
type MalformedError struct {
	// Document is the name of the offending document.
	Document string

	// Line is the 1-based line number of the opening fence.
	Line int
}

// Error returns the located error message.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: unterminated code fence opened at line %d", e.Document, e.Line)
}

// Unwrap returns the ErrMalformedDocument sentinel.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedDocument
}

// fence describes a parsed fence line.
type fence struct {
	char   byte
	length int
	tag    string
}

// Extractor splits documents into prose and code segments. It is pure
// and deterministic: the same input always yields the same segments.
type Extractor struct {
	fenceChars string
}

// NewExtractor creates an Extractor recognizing backtick and tilde fences.
func NewExtractor() *Extractor {
	return &Extractor{fenceChars: defaultFenceChars}
}

// NewExtractorFor creates an Extractor recognizing the given fence
// characters. Empty selects the defaults.
func NewExtractorFor(fenceChars string) *Extractor {
	if fenceChars == "" {
		fenceChars = defaultFenceChars
	}

	return &Extractor{fenceChars: fenceChars}
}

// Extract scans doc for fenced code blocks and returns the ordered
// segment sequence. Segment raw spans concatenate back to doc.Text.
// An unterminated fence aborts with a MalformedError carrying the
// opening line number.
func (e *Extractor) Extract(doc *Document) ([]Segment, error) {
	scan := &fenceScan{doc: doc}

	lineNum := 0

	forEachLine(doc.Text, func(line string) {
		lineNum++

		if scan.inCode {
			scan.codeLine(e, line, lineNum)
		} else {
			scan.proseLine(e, line, lineNum)
		}
	})

	if scan.inCode {
		return nil, &MalformedError{Document: doc.Name, Line: scan.openLine}
	}

	scan.flushProse(lineNum)

	return scan.segments, nil
}

// parseFence parses a line as a fence delimiter. The tag may not contain
// the fence character, which also rejects inline code spans.
func (e *Extractor) parseFence(line string) (fence, bool) {
	trimmed := strings.TrimRight(line, "\r\n")
	if trimmed == "" || !strings.ContainsRune(e.fenceChars, rune(trimmed[0])) {
		return fence{}, false
	}

	char := trimmed[0]

	length := 0
	for length < len(trimmed) && trimmed[length] == char {
		length++
	}

	if length < minFenceLength {
		return fence{}, false
	}

	rest := strings.TrimSpace(trimmed[length:])
	if strings.ContainsRune(rest, rune(char)) {
		return fence{}, false
	}

	tag := ""
	if rest != "" {
		tag = strings.Fields(rest)[0]
	}

	return fence{char: char, length: length, tag: tag}, true
}

// closes reports whether line is a closing fence for open: same
// character, equal-or-greater length, no tag.
func (e *Extractor) closes(line string, open fence) bool {
	f, ok := e.parseFence(line)
	if !ok {
		return false
	}

	return f.char == open.char && f.length >= open.length && f.tag == ""
}

// fenceScan holds the mutable state of one Extract pass.
type fenceScan struct {
	doc      *Document
	segments []Segment

	prose      strings.Builder
	proseStart int

	inCode   bool
	open     fence
	openLine int
	codeRaw  strings.Builder
	codeBody strings.Builder
}

// proseLine consumes a line outside any code block.
func (s *fenceScan) proseLine(e *Extractor, line string, lineNum int) {
	f, ok := e.parseFence(line)
	if !ok {
		if s.prose.Len() == 0 {
			s.proseStart = lineNum
		}

		s.prose.WriteString(line)

		return
	}

	s.flushProse(lineNum - 1)

	s.inCode = true
	s.open = f
	s.openLine = lineNum
	s.codeRaw.WriteString(line)
}

// codeLine consumes a line inside a code block.
func (s *fenceScan) codeLine(e *Extractor, line string, lineNum int) {
	s.codeRaw.WriteString(line)

	if !e.closes(line, s.open) {
		s.codeBody.WriteString(line)

		return
	}

	s.segments = append(s.segments, Segment{
		Kind:      KindCode,
		Raw:       s.codeRaw.String(),
		Content:   s.codeBody.String(),
		Lang:      s.open.tag,
		StartLine: s.openLine,
		EndLine:   lineNum,
	})

	s.codeRaw.Reset()
	s.codeBody.Reset()
	s.inCode = false
}

// flushProse emits the accumulated prose span, if any, ending at endLine.
func (s *fenceScan) flushProse(endLine int) {
	if s.prose.Len() == 0 {
		return
	}

	raw := s.prose.String()

	s.segments = append(s.segments, Segment{
		Kind:      KindProse,
		Raw:       raw,
		Content:   raw,
		StartLine: s.proseStart,
		EndLine:   endLine,
	})

	s.prose.Reset()
}

// forEachLine calls fn for every line of text, terminators included.
func forEachLine(text string, fn func(line string)) {
	for start := 0; start < len(text); {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			fn(text[start:])

			return
		}

		fn(text[start : start+end+1])
		start += end + 1
	}
}
