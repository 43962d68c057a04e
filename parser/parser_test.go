package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripSources = []string{
	"1 + 2 * 3",
	"(1 + 2) * 3",
	"1 - (2 - 3)",
	"(1 - 2) - 3",
	"-(1 + 2)",
	"!(a && b)",
	"(-a)[0]",
	"-a[0]",
	"(a + b)(c)",
	"(x = 3) + 1",
	"x = y = 3",
	"1 < 2 == true",
	"1 < (2 == true)",
	"(0..3)[1]",
	"[1, 2.0, 3.25][0..2]",
	`{"a": {:}, "b": {}}["a"]`,
	"if a { 1 } else if b { 2 } else { 3 }",
	"(if a { 1 }) + 2",
	"fun(x) { fun(y) { x + y } }(5)(3)",
	"let f = fun(n) { if n < 2 { return n } f(n - 1) + f(n - 2) } f(10)",
	"mut i = 0 { mut j = i j = j + 1 }",
}

func TestRoundTrip(t *testing.T) {
	for i, source := range roundTripSources {
		checkRoundTrip(t, "test", source, "test %d: %q", i, source)
	}
}

func TestRoundTripFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.yascl"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, path := range files {
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		checkRoundTrip(t, path, string(b), "%s", path)
	}
}

func checkRoundTrip(t *testing.T, file string, source string, msgAndArgs ...interface{}) {
	prog, err := parser.Parse(file, source)
	require.NoError(t, err, msgAndArgs...)
	rendered := prog.String()
	reparsed, err := parser.Parse(file, rendered)
	require.NoError(t, err, msgAndArgs...)
	assert.Equal(t, ast.Dump(prog), ast.Dump(reparsed), msgAndArgs...)
	assert.Equal(t, rendered, reparsed.String(), msgAndArgs...)
}

func TestRender(t *testing.T) {
	for i, test := range []struct {
		source   string
		rendered string
	}{
		{"((1 + 2)) * 3", "(1 + 2) * 3"},
		{"1 + (2 * 3)", "1 + 2 * 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"- (-1)", "--1"},
		{"let  x=[1,2]", "let x = [1, 2]"},
		{"{\"a\":1}", `{"a": 1}`},
		{"3.0 + 0.5", "3.0 + 0.5"},
		{"fun(a,b){a}", "fun(a, b) { a }"},
		{"if x {} else {1}", "if x {} else { 1 }"},
		{"let a = 1\nlet b = 2", "let a = 1\nlet b = 2"},
	} {
		prog, err := parser.Parse("test", test.source)
		if assert.NoError(t, err, "test %d", i) {
			assert.Equal(t, test.rendered, prog.String(), "test %d", i)
		}
	}
}
