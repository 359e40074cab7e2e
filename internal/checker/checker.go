package checker

import (
	"errors"
	"fmt"
	"regexp"

	"snipref/internal/document"
	"snipref/internal/report"
)

// DefaultIdentifierPattern is the identifier shape accepted for prose
// references.
const DefaultIdentifierPattern = `[A-Za-z_][A-Za-z0-9_]*`

// Config is the run configuration, fixed at construction and never
// mutated mid-run.
type Config struct {
	// IdentifierPattern is the (unanchored) regular expression a
	// backticked token must fully match to count as a reference.
	IdentifierPattern string

	// FenceChars are the characters recognized as fence delimiters.
	// Empty selects backtick and tilde.
	FenceChars string

	// FailOn selects the findings severity that fails a run.
	FailOn report.FailOn

	// DetectLanguages enables content-based language detection for
	// untagged code blocks.
	DetectLanguages bool

	// SuggestionDistance caps did-you-mean suggestions by edit
	// distance. Zero disables suggestions.
	SuggestionDistance int
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		IdentifierPattern:  DefaultIdentifierPattern,
		FailOn:             report.FailOnError,
		DetectLanguages:    true,
		SuggestionDistance: DefaultSuggestionDistance,
	}
}

// Checker runs the snippet consistency pipeline over one document at a
// time: load, extract, index, validate, build. A Checker is stateless
// between runs and safe for concurrent use across documents.
type Checker struct {
	cfg          Config
	identPattern *regexp.Regexp
	extractor    *document.Extractor
	indexer      *Indexer
	suggester    *Suggester
}

// New creates a Checker, compiling the identifier pattern.
func New(cfg Config) (*Checker, error) {
	pattern := cfg.IdentifierPattern
	if pattern == "" {
		pattern = DefaultIdentifierPattern
	}

	anchored, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("compile identifier pattern: %w", err)
	}

	var suggester *Suggester
	if cfg.SuggestionDistance > 0 {
		suggester = NewSuggester(cfg.SuggestionDistance)
	}

	return &Checker{
		cfg:          cfg,
		identPattern: anchored,
		extractor:    document.NewExtractorFor(cfg.FenceChars),
		indexer:      NewIndexer(),
		suggester:    suggester,
	}, nil
}

// CheckPath loads and checks the document at path. The report is always
// non-nil: fatal load or extraction failures yield an aborted report
// alongside the error; completed runs return a nil error even when the
// report fails the check.
func (c *Checker) CheckPath(path string) (*report.Report, error) {
	doc, err := document.Load(path)
	if err != nil {
		return abortedReport(path, err), err
	}

	return c.Check(doc)
}

// CheckText checks in-memory text, named only for reporting.
func (c *Checker) CheckText(name, text string) (*report.Report, error) {
	doc, err := document.LoadString(name, text)
	if err != nil {
		return abortedReport(name, err), err
	}

	return c.Check(doc)
}

// Check runs the pipeline stages in order over a loaded document. Each
// stage consumes the full output of the previous one; the index is
// always fully built before any reference is resolved so that
// referenced-before-definition is distinguished from never-defined.
func (c *Checker) Check(doc *document.Document) (*report.Report, error) {
	segments, err := c.extractor.Extract(doc)
	if err != nil {
		return abortedReport(doc.Name, err), err
	}

	if c.cfg.DetectLanguages {
		document.DetectLanguages(segments)
	}

	ix := c.indexer.Index(segments)
	refs := ExtractReferences(segments, c.identPattern)

	builder := report.NewBuilder(doc.Name, c.cfg.FailOn)
	for _, finding := range Validate(refs, ix, c.suggester) {
		builder.Add(finding)
	}

	builder.SetStats(report.Stats{
		Lines:       doc.LineCount(),
		Segments:    len(segments),
		CodeBlocks:  countCode(segments),
		Identifiers: len(ix.Declarations()),
		References:  len(refs),
	})

	return builder.Build(), nil
}

// countCode returns the number of code segments.
func countCode(segments []document.Segment) int {
	count := 0

	for _, seg := range segments {
		if seg.IsCode() {
			count++
		}
	}

	return count
}

// abortedReport converts a fatal pipeline error into the aborted report
// shape, carrying the fence line for malformed documents.
func abortedReport(name string, err error) *report.Report {
	line := 0

	var malformed *document.MalformedError
	if errors.As(err, &malformed) {
		line = malformed.Line
	}

	return report.NewAborted(name, err.Error(), line)
}
