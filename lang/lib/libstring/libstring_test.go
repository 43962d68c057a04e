// NOTE:  This file uses package name suffixed with _test to avoid an import
// cycle.
package libstring_test

import (
	"testing"

	"github.com/luthersystems/yascl/yascltest"
)

func TestPackage(t *testing.T) {
	r := &yascltest.Runner{}
	r.RunTestFile(t, "string_test.yascl")
}

func TestFormatErrors(t *testing.T) {
	tests := yascltest.TestSuite{
		{"format", yascltest.TestSequence{
			{`format("{}")`, "RuntimeError: test:1:7: format: too many formatting directives for supplied values", ""},
			{`format("{x}", 1)`, "RuntimeError: test:1:7: format: formatting directives must be empty", ""},
			{`format("{", 1)`, "RuntimeError: test:1:7: format: unclosed formatting directive", ""},
			{`format("}", 1)`, "RuntimeError: test:1:7: format: unexpected closing brace '}' outside of formatting directive", ""},
			{`format(1)`, "RuntimeError: test:1:7: format: first argument is not a string", ""},
		}},
		{"argument types", yascltest.TestSequence{
			{`upper(1)`, "RuntimeError: test:1:6: upper: argument is not a string: Integer", ""},
			{`join("a", ",")`, "RuntimeError: test:1:5: join: first argument is not an array: String", ""},
		}},
	}
	yascltest.RunTestSuite(t, tests)
}
