// NOTE:  This file uses package name suffixed with _test to avoid an import
// cycle.
package libmath_test

import (
	"testing"

	"github.com/luthersystems/yascl/yascltest"
)

func TestPackage(t *testing.T) {
	r := &yascltest.Runner{}
	r.RunTestFile(t, "math_test.yascl")
}

func TestErrors(t *testing.T) {
	tests := yascltest.TestSuite{
		{"non-numeric arguments", yascltest.TestSequence{
			{`sqrt("4")`, "RuntimeError: test:1:5: sqrt: argument is not a number: String", ""},
			{`abs(null)`, "RuntimeError: test:1:4: abs: argument is not a number: Null", ""},
			{`max(1, "2")`, "RuntimeError: test:1:4: max: argument is not a number: String", ""},
			{`min()`, "RuntimeError: test:1:4: min: expected at least 1 argument(s), got 0", ""},
		}},
	}
	yascltest.RunTestSuite(t, tests)
}
