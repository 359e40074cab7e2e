package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipref/internal/document"
)

func codeSegment(startLine int, content string) document.Segment {
	return document.Segment{
		Kind:      document.KindCode,
		Content:   content,
		StartLine: startLine,
		EndLine:   startLine + 1,
	}
}

func TestScanLine_DeclarationShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
		kind DeclKind
	}{
		{name: "plain function", line: "function fetchData() {", want: "fetchData", kind: DeclFunction},
		{name: "async function", line: "async function loadUser() {", want: "loadUser", kind: DeclFunction},
		{name: "exported function", line: "export function withStyles(Component) {", want: "withStyles", kind: DeclFunction},
		{name: "export default function", line: "export default function Button() {", want: "Button", kind: DeclComponent},
		{name: "hook function", line: "function useData(url) {", want: "useData", kind: DeclHook},
		{name: "component function", line: "function Toggle() {", want: "Toggle", kind: DeclComponent},
		{name: "go func", line: "func Extract(doc *Document) error {", want: "Extract", kind: DeclComponent},
		{name: "go method", line: "func (c *Checker) check() {", want: "check", kind: DeclFunction},
		{name: "arrow const", line: "const Toggle = () => {}", want: "Toggle", kind: DeclComponent},
		{name: "arrow hook", line: "const useToggle = (initial) => {", want: "useToggle", kind: DeclHook},
		{name: "function expression", line: "const handler = function () {", want: "handler", kind: DeclFunction},
		{name: "plain constant", line: "const API_URL = \"https://example.com\"", want: "API_URL", kind: DeclConstant},
		{name: "let constant", line: "let counter = 0", want: "counter", kind: DeclConstant},
		{name: "class", line: "class Input extends React.Component {", want: "Input", kind: DeclClass},
		{name: "export default class", line: "export default class App {", want: "App", kind: DeclClass},
		{name: "bare export", line: "export default Listings;", want: "Listings", kind: DeclComponent},
		{name: "bare export hook", line: "export useKeyPress", want: "useKeyPress", kind: DeclHook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decls := scanLine(tt.line)
			require.NotEmpty(t, decls)
			assert.Equal(t, tt.want, decls[0].name)
			assert.Equal(t, tt.kind, decls[0].kind)
		})
	}
}

func TestScanLine_ParameterNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		params []string
	}{
		{name: "single parameter", line: "function withStyles(Component) {", params: []string{"Component"}},
		{name: "multiple parameters", line: "function connect(mapState, mapDispatch) {", params: []string{"mapState", "mapDispatch"}},
		{name: "default value", line: "function useToggle(initial = false) {", params: []string{"initial"}},
		{name: "rest parameter", line: "function merge(base, ...rest) {", params: []string{"base", "rest"}},
		{name: "go typed parameter", line: "func Extract(doc *Document) error {", params: []string{"doc"}},
		{name: "arrow const", line: "const useData = (url) => {", params: []string{"url"}},
		{name: "bare arrow head", line: "const double = x => x * 2", params: []string{"x"}},
		{name: "function expression", line: "const handler = function (event) {", params: []string{"event"}},
		{name: "no parameters", line: "function Toggle() {", params: nil},
		{name: "plain constant has none", line: "const API_URL = \"https://example.com\"", params: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decls := scanLine(tt.line)
			require.NotEmpty(t, decls)

			var params []string
			for _, d := range decls[1:] {
				assert.Equal(t, DeclParameter, d.kind)
				params = append(params, d.name)
			}

			assert.Equal(t, tt.params, params)
		})
	}
}

func TestScanLine_UnrecognizedLines(t *testing.T) {
	t.Parallel()

	lines := []string{
		"",
		"return <div>{children}</div>",
		"  if (loading) {",
		"} // end",
		"<Button onClick={toggle} />",
		"import React from 'react'",
	}

	for _, line := range lines {
		assert.Empty(t, scanLine(line), "line %q should not be indexed", line)
	}
}

func TestIndex_FirstDefinitionWins(t *testing.T) {
	t.Parallel()

	segments := []document.Segment{
		codeSegment(1, "const Toggle = () => {}\n"),
		{Kind: document.KindProse, Content: "prose\n", StartLine: 4, EndLine: 4},
		codeSegment(5, "const Toggle = () => {}\n"),
	}

	ix := NewIndexer().Index(segments)

	first, ok := ix.FirstDefinition("Toggle")
	require.True(t, ok)
	assert.Equal(t, 0, first.Segment)
	assert.Equal(t, 2, first.Line)

	// The re-declaration is recorded but not promoted.
	assert.Len(t, ix.Declarations(), 2)
	assert.Len(t, ix.FirstDefinitions(), 1)
}

func TestIndex_LineNumbersAccountForFence(t *testing.T) {
	t.Parallel()

	// Opening fence on line 3 means the declaration sits on line 4.
	seg := codeSegment(3, "function useData() {}\n")

	ix := NewIndexer().Index([]document.Segment{seg})

	id, ok := ix.FirstDefinition("useData")
	require.True(t, ok)
	assert.Equal(t, 4, id.Line)
	assert.Equal(t, DeclHook, id.Kind)
}

func TestIndex_SkipsProseSegments(t *testing.T) {
	t.Parallel()

	segments := []document.Segment{
		{Kind: document.KindProse, Content: "function lookalike() {}\n", StartLine: 1, EndLine: 1},
	}

	ix := NewIndexer().Index(segments)
	assert.Empty(t, ix.Names())
}

func TestIsHookName(t *testing.T) {
	t.Parallel()

	assert.True(t, isHookName("useData"))
	assert.True(t, isHookName("useKeyPress"))
	assert.False(t, isHookName("use"))
	assert.False(t, isHookName("user"))
	assert.False(t, isHookName("Toggle"))
}
