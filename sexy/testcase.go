package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType names the fence holding a test's source program.
type InputType string

const (
	InputTypeHarmony InputType = "harmony"
)

// AssertionType names a fence that checks one stage of the pipeline.
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"
	AssertionTypeOptimized    AssertionType = "optimized"
	AssertionTypeJS           AssertionType = "js"
	AssertionTypeCompileError AssertionType = "compile-error"
)

// Assertion is one expectation about a compiled test program. ParsedSexy
// is set for pattern assertions (ast and optimized) and nil otherwise.
type Assertion struct {
	Type       AssertionType
	Content    string
	ParsedSexy *Node
}

// TestCase is a "Test: <name>" section of a Markdown file: one input fence
// followed by one or more assertion fences.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

type fenceRole int

const (
	roleInput fenceRole = iota + 1
	roleText
	rolePattern
)

// fenceRoles classifies every fence language a test file may use.
var fenceRoles = map[string]fenceRole{
	string(InputTypeHarmony):          roleInput,
	string(AssertionTypeAST):          rolePattern,
	string(AssertionTypeOptimized):    rolePattern,
	string(AssertionTypeJS):           roleText,
	string(AssertionTypeCompileError): roleText,
}

const testHeadingPrefix = "Test: "

// ExtractTestCases reads every test case out of a Markdown document. Fences
// without a language are prose and ignored; any other fence must belong to
// a test.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	source := []byte(markdownContent)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	x := &extractor{source: source}
	if err := ast.Walk(doc, x.visit); err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}
	if err := x.flush(); err != nil {
		return nil, err
	}
	return x.cases, nil
}

type extractor struct {
	source  []byte
	cases   []TestCase
	current *TestCase
}

func (x *extractor) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var err error
	switch n := node.(type) {
	case *ast.Heading:
		if name, ok := strings.CutPrefix(x.headingText(n), testHeadingPrefix); ok {
			err = x.startTest(name)
		}
		return ast.WalkSkipChildren, err
	case *ast.FencedCodeBlock:
		err = x.addFence(n)
	}
	if err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}

func (x *extractor) startTest(name string) error {
	if err := x.flush(); err != nil {
		return err
	}
	x.current = &TestCase{Name: name, Assertions: []Assertion{}}
	return nil
}

// flush checks the test in progress and, if it is complete, keeps it.
func (x *extractor) flush() error {
	tc := x.current
	if tc == nil {
		return nil
	}
	switch {
	case tc.Input == "":
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	case len(tc.Assertions) == 0:
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	x.cases = append(x.cases, *tc)
	x.current = nil
	return nil
}

func (x *extractor) addFence(n *ast.FencedCodeBlock) error {
	language := string(n.Language(x.source))
	if language == "" {
		return nil
	}
	line := x.fenceLine(n)
	role := fenceRoles[language]

	if x.current == nil {
		if role == 0 {
			return fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", line, language)
		}
		return fmt.Errorf("line %d: %s fence found outside of test case", line, language)
	}
	tc := x.current
	content := strings.TrimRight(x.fenceContent(n), "\n")

	switch role {
	case roleInput:
		if tc.Input != "" {
			return fmt.Errorf("line %d: multiple input fences found in test '%s'", line, tc.Name)
		}
		tc.Input = content
		tc.InputType = InputType(language)
	case roleText, rolePattern:
		a := Assertion{Type: AssertionType(language), Content: content}
		if role == rolePattern {
			pattern, err := Parse(content)
			if err != nil {
				return fmt.Errorf("line %d: failed to parse Sexy assertion in test '%s': %w", line, tc.Name, err)
			}
			a.ParsedSexy = pattern
		}
		tc.Assertions = append(tc.Assertions, a)
	default:
		return fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, tc.Name)
	}
	return nil
}

func (x *extractor) headingText(h *ast.Heading) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(x.source))
		}
	}
	return b.String()
}

func (x *extractor) fenceContent(n *ast.FencedCodeBlock) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(x.source))
	}
	return buf.String()
}

// fenceLine is the 1-based line of the opening ``` of n.
func (x *extractor) fenceLine(n *ast.FencedCodeBlock) int {
	offset := 0
	switch {
	case n.Info != nil:
		offset = n.Info.Segment.Start
	case n.Lines().Len() > 0:
		offset = n.Lines().At(0).Start
	}
	return bytes.Count(x.source[:min(offset, len(x.source))], []byte("\n")) + 1
}
