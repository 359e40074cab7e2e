// Package checker implements the snippet consistency pipeline: indexing
// identifiers declared in code segments, resolving backticked prose
// references against them, and producing findings for the report.
package checker

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"snipref/internal/document"
)

// DeclKind classifies an identifier declaration.
type DeclKind string

// Declaration kinds.
const (
	DeclFunction  DeclKind = "function"
	DeclComponent DeclKind = "component"
	DeclHook      DeclKind = "hook"
	DeclClass     DeclKind = "class"
	DeclConstant  DeclKind = "constant"
	DeclParameter DeclKind = "parameter"
)

// hookPrefix marks hook-style function names.
const hookPrefix = "use"

// Identifier is a name declared in a code segment.
type Identifier struct {
	// Name is the declared name.
	Name string

	// Kind is the declaration classification.
	Kind DeclKind

	// Segment is the index of the declaring segment in the document's
	// segment sequence.
	Segment int

	// Line is the 1-based document line of the declaration.
	Line int
}

// Index maps identifier names to their declarations. Within one run a
// name has at most one first definition; later re-declarations are
// recorded but never promoted.
type Index struct {
	entries []Identifier
	first   map[string]Identifier
}

// FirstDefinition returns the earliest declaration of name in document
// order.
func (ix *Index) FirstDefinition(name string) (Identifier, bool) {
	id, ok := ix.first[name]

	return id, ok
}

// Declarations returns every recorded declaration in document order,
// re-declarations included.
func (ix *Index) Declarations() []Identifier {
	out := make([]Identifier, len(ix.entries))
	copy(out, ix.entries)

	return out
}

// FirstDefinitions returns the canonical declarations in document order.
func (ix *Index) FirstDefinitions() []Identifier {
	out := make([]Identifier, 0, len(ix.first))
	for _, id := range ix.first {
		out = append(out, id)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Segment != out[j].Segment {
			return out[i].Segment < out[j].Segment
		}

		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// Names returns all known identifier names, unordered.
func (ix *Index) Names() []string {
	names := make([]string, 0, len(ix.first))
	for name := range ix.first {
		names = append(names, name)
	}

	return names
}

// add records a declaration, keeping the first definition canonical.
func (ix *Index) add(id Identifier) {
	ix.entries = append(ix.entries, id)

	if _, exists := ix.first[id.Name]; !exists {
		ix.first[id.Name] = id
	}
}

// Declaration shapes recognized by the lightweight scan. This is a
// heuristic line classification, not a language parser: unmatched lines
// are simply not indexed, and the scan cannot fail.
var (
	functionPattern   = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(?:async\s+)?function\s*\*?\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?:\(([^)]*))?`)
	goFuncPattern     = regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*(?:\(([^)]*))?`)
	classPattern      = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	assignPattern     = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)
	exportNamePattern = regexp.MustCompile(`^\s*export\s+(?:default\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*;?\s*$`)

	// Parameter lists of function-valued right-hand sides: a
	// parenthesized or bare-identifier arrow head, or a function
	// expression.
	arrowHeadPattern   = regexp.MustCompile(`^(?:\(([^)]*)\)|([A-Za-z_][A-Za-z0-9_]*))\s*=>`)
	functionRHSPattern = regexp.MustCompile(`^function\s*\*?\s*(?:[A-Za-z_][A-Za-z0-9_]*)?\s*\(([^)]*)`)

	// paramNamePattern extracts the declared name of one parameter. The
	// first identifier of a comma group is the name for JS defaults and
	// destructured members as well as Go and typed parameters.
	paramNamePattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// Indexer scans code segments for top-level declared names.
type Indexer struct{}

// NewIndexer creates an Indexer.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// Index builds the identifier index over all code segments, in document
// order. Segment indices refer to positions in the given sequence.
func (in *Indexer) Index(segments []document.Segment) *Index {
	ix := &Index{first: map[string]Identifier{}}

	for segIdx, seg := range segments {
		if !seg.IsCode() {
			continue
		}

		// Content starts on the line after the opening fence.
		line := seg.StartLine

		forEachContentLine(seg.Content, func(text string) {
			line++

			for _, d := range scanLine(text) {
				ix.add(Identifier{Name: d.name, Kind: d.kind, Segment: segIdx, Line: line})
			}
		})
	}

	return ix
}

// decl is one declared name found on a line.
type decl struct {
	name string
	kind DeclKind
}

// scanLine matches one line against the declaration shapes. The first
// matching shape wins. Function-like declarations also declare their
// parameter names: a reference to a parameter after its function is
// defined resolves like any other identifier.
func scanLine(line string) []decl {
	if m := functionPattern.FindStringSubmatch(line); m != nil {
		return withParams(decl{m[1], classifyCallable(m[1])}, m[2])
	}

	if m := goFuncPattern.FindStringSubmatch(line); m != nil {
		return withParams(decl{m[1], classifyCallable(m[1])}, m[2])
	}

	if m := classPattern.FindStringSubmatch(line); m != nil {
		return []decl{{m[1], DeclClass}}
	}

	if m := assignPattern.FindStringSubmatch(line); m != nil {
		return withParams(decl{m[1], classifyAssignment(m[1], m[2])}, callableParams(m[2]))
	}

	if m := exportNamePattern.FindStringSubmatch(line); m != nil {
		return []decl{{m[1], classifyName(m[1])}}
	}

	return nil
}

// withParams appends parameter declarations to the declaring name.
func withParams(d decl, params string) []decl {
	decls := []decl{d}

	for _, group := range strings.Split(params, ",") {
		name := paramNamePattern.FindString(group)
		if name == "" {
			continue
		}

		decls = append(decls, decl{name, DeclParameter})
	}

	return decls
}

// callableParams extracts the parameter list from a function-valued
// right-hand side. Non-callable values have no parameters.
func callableParams(rhs string) string {
	rhs = strings.TrimSpace(rhs)

	if m := arrowHeadPattern.FindStringSubmatch(rhs); m != nil {
		if m[1] != "" {
			return m[1]
		}

		return m[2]
	}

	if m := functionRHSPattern.FindStringSubmatch(rhs); m != nil {
		return m[1]
	}

	return ""
}

// classifyCallable classifies a function-like declaration by its name.
func classifyCallable(name string) DeclKind {
	if isHookName(name) {
		return DeclHook
	}

	if startsUpper(name) {
		return DeclComponent
	}

	return DeclFunction
}

// classifyAssignment distinguishes function-valued assignments from
// plain constants by inspecting the right-hand side.
func classifyAssignment(name, rhs string) DeclKind {
	if strings.Contains(rhs, "=>") || strings.HasPrefix(strings.TrimSpace(rhs), "function") {
		return classifyCallable(name)
	}

	return DeclConstant
}

// classifyName classifies a bare exported name by shape alone.
func classifyName(name string) DeclKind {
	if isHookName(name) {
		return DeclHook
	}

	if startsUpper(name) {
		return DeclComponent
	}

	return DeclConstant
}

// isHookName reports whether name follows the use-prefix hook convention.
func isHookName(name string) bool {
	rest := strings.TrimPrefix(name, hookPrefix)

	return rest != name && rest != "" && startsUpper(rest)
}

// startsUpper reports whether the first rune of name is upper case.
func startsUpper(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}

	return false
}

// forEachContentLine calls fn for every line of a code body, without
// terminators.
func forEachContentLine(content string, fn func(line string)) {
	for start := 0; start < len(content); {
		end := strings.IndexByte(content[start:], '\n')
		if end < 0 {
			fn(content[start:])

			return
		}

		fn(content[start : start+end])
		start += end + 1
	}
}
