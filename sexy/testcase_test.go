package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const fence = "```"

func TestExtractTestCases_BasicTest(t *testing.T) {
	markdown := `# Declarations

## Test: number
` + fence + `harmony
note x: stream = 1;
` + fence + `
` + fence + `ast
(program (let (var "x" stream) (number 1)))
` + fence + `

## Test: string
` + fence + `harmony
note s: lyrics = "a";
` + fence + `
` + fence + `js
let s_1 = "a";
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "number")
	be.Equal(t, tc1.Input, "note x: stream = 1;")
	be.Equal(t, tc1.InputType, InputTypeHarmony)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc1.Assertions[0].ParsedSexy.String(), `(program (let (var "x" stream) (number 1)))`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "string")
	be.Equal(t, tc2.Assertions[0].Type, AssertionTypeJS)
	be.Equal(t, tc2.Assertions[0].Content, `let s_1 = "a";`)
	be.True(t, tc2.Assertions[0].ParsedSexy == nil)
}

func TestExtractTestCases_AllAssertionTypes(t *testing.T) {
	markdown := `## Test: everything
` + fence + `harmony
play(1 + 2);
` + fence + `
` + fence + `ast
(program (print (binary "+" stream ...)))
` + fence + `
` + fence + `optimized
(program (print (number 3)))
` + fence + `
` + fence + `js
console.log(3);
` + fence + `

## Test: failure
` + fence + `harmony
play(x);
` + fence + `
` + fence + `compile-error
x is not declared
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc := testCases[0]
	be.Equal(t, len(tc.Assertions), 3)
	be.Equal(t, tc.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc.Assertions[1].Type, AssertionTypeOptimized)
	be.True(t, tc.Assertions[1].ParsedSexy != nil)
	be.Equal(t, tc.Assertions[2].Type, AssertionTypeJS)

	failure := testCases[1]
	be.Equal(t, failure.Assertions[0].Type, AssertionTypeCompileError)
	be.Equal(t, failure.Assertions[0].Content, "x is not declared")
	be.True(t, failure.Assertions[0].ParsedSexy == nil)
}

func TestExtractTestCases_MultilineInput(t *testing.T) {
	markdown := `## Test: function
` + fence + `harmony
song f() -> mute {
  play(1);
}

` + fence + `
` + fence + `js
function f_1() {
  console.log(1);
}
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, testCases[0].Input, "song f() -> mute {\n  play(1);\n}")
	be.Equal(t, testCases[0].Assertions[0].Content, "function f_1() {\n  console.log(1);\n}")
}

func TestExtractTestCases_EmptyFile(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_NoTestCases(t *testing.T) {
	markdown := `# Just a document

Some prose, and a plain fence:

` + fence + `
not a test
` + fence

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_InvalidSexyAssertion(t *testing.T) {
	markdown := `## Test: bad pattern
` + fence + `harmony
play(1);
` + fence + `
` + fence + `ast
(program (print
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "failed to parse Sexy assertion in test 'bad pattern'"))
}

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		language string
	}{
		{"harmony fence outside test", "# Document\n\n```harmony\nplay(1);\n```\n", "harmony"},
		{"ast fence outside test", "# Document\n\n```ast\n(program)\n```\n", "ast"},
		{"js fence outside test", "# Document\n\n```js\nconsole.log(1);\n```\n", "js"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTestCases(test.markdown)
			be.True(t, err != nil)
			be.True(t, strings.Contains(err.Error(), test.language+" fence found outside of test case"))
		})
	}
}

func TestExtractTestCases_UnknownFenceOutsideTest(t *testing.T) {
	markdown := "# Document\n\n```python\nprint(1)\n```\n"
	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'python' found outside of test case"))
}

func TestExtractTestCases_UnknownFenceInTest(t *testing.T) {
	markdown := `## Test: odd fence
` + fence + `harmony
play(1);
` + fence + `
` + fence + `wasm
(module)
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'wasm' in test 'odd fence'"))
}

func TestExtractTestCases_TestMissingInputFence(t *testing.T) {
	markdown := `## Test: no input
` + fence + `js
console.log(1);
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no input' has no input fence"))
}

func TestExtractTestCases_TestMissingAssertionFence(t *testing.T) {
	markdown := `## Test: no assertions
` + fence + `harmony
play(1);
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no assertions' has no assertion fences"))
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := `## Test: multiple inputs
` + fence + `harmony
play(1);
` + fence + `
` + fence + `harmony
play(2);
` + fence + `
` + fence + `js
console.log(1);
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple input fences found"))
}

func TestExtractTestCases_LineNumberAccuracy(t *testing.T) {
	markdown := `# Title

## Test: line numbers
` + fence + `harmony
play(1);
` + fence + `
` + fence + `rust
fn main() {}
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "line 7:"))
}

func TestExtractTestCases_ErrorInSecondTest(t *testing.T) {
	markdown := `## Test: first test
` + fence + `harmony
play(1);
` + fence + `
` + fence + `js
console.log(1);
` + fence + `

## Test: second test missing input
` + fence + `js
console.log(2);
` + fence

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'second test missing input' has no input fence"))
}
