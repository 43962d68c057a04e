package libtesting

import (
	"fmt"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib/internal/libutil"
)

// NativeKey is the key under which the environment's TestSuite is stored in
// lang.Runtime.Natives.
const NativeKey = "testing"

// LoadPackage adds the testing functions to env and attaches a new, empty
// TestSuite to its runtime.
func LoadPackage(env *lang.Env) error {
	suite := NewTestSuite()
	env.Runtime.Natives[NativeKey] = suite
	err := env.AddBuiltins(suite.Ops()...)
	if err != nil {
		return err
	}
	return env.AddBuiltins(builtins...)
}

var builtins = []lang.BuiltinDef{
	libutil.Function("assert", lang.Formals("condition", lang.VarArgSymbol, "message"), builtinAssert),
	libutil.Function("assert_eq", lang.Formals("expected", "actual"), builtinAssertEq),
}

// TestSuite is an ordered set of named tests.
type TestSuite struct {
	tests map[string]*Test
	order []string
}

// NewTestSuite returns an empty TestSuite.
func NewTestSuite() *TestSuite {
	return &TestSuite{
		tests: make(map[string]*Test),
	}
}

// Add appends t to the suite.  Test names must be unique.
func (s *TestSuite) Add(t *Test) error {
	if s.tests[t.Name] != nil {
		return fmt.Errorf("test with the same name already defined: %v", t.Name)
	}
	s.order = append(s.order, t.Name)
	s.tests[t.Name] = t
	return nil
}

// Len returns the number of tests in the suite.
func (s *TestSuite) Len() int {
	return len(s.order)
}

// Test returns the i-th test in the order tests were added.
func (s *TestSuite) Test(i int) *Test {
	return s.tests[s.order[i]]
}

// Ops returns the builtins that add tests to the suite.
func (s *TestSuite) Ops() []lang.BuiltinDef {
	return []lang.BuiltinDef{
		libutil.Function("test", lang.Formals("name", "fun"), s.OpTest),
	}
}

// OpTest registers a zero argument function as a named test.
func (s *TestSuite) OpTest(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	name, fun := args[0], args[1]
	if name.Type != lang.TString {
		return nil, fmt.Errorf("first argument is not a string: %v", name.Type)
	}
	if fun.Type != lang.TFunction || len(fun.Params) != 0 {
		return nil, fmt.Errorf("second argument is not a function without parameters")
	}
	err := s.Add(&Test{Name: name.Str, Fun: fun})
	if err != nil {
		return nil, err
	}
	return lang.Null(), nil
}

// Values returns the test functions so their scopes outlive frame
// collection.  It implements lang.ValueHolder.
func (s *TestSuite) Values() []*lang.Value {
	vals := make([]*lang.Value, len(s.order))
	for i, name := range s.order {
		vals[i] = s.tests[name].Fun
	}
	return vals
}

// Test is a named function without parameters registered by test().
type Test struct {
	Name string
	Fun  *lang.Value
}

// Run calls the test function in env.
func (t *Test) Run(env *lang.Env) error {
	_, err := env.Call(t.Fun, nil)
	return err
}

// EnvTestSuite returns the TestSuite attached to env's runtime, or nil if the
// package was never loaded.
func EnvTestSuite(env *lang.Env) *TestSuite {
	suite, _ := env.Runtime.Natives[NativeKey].(*TestSuite)
	return suite
}

func builtinAssert(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("expected at most 2 argument(s), got %d", len(args))
	}
	if args[0].IsTruthy() {
		return lang.Null(), nil
	}
	if len(args) == 2 {
		return nil, fmt.Errorf("assertion failed: %s", args[1])
	}
	return nil, fmt.Errorf("assertion failed")
}

func builtinAssertEq(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	expect, actual := args[0], args[1]
	if expect.DeepEqual(actual) {
		return lang.Null(), nil
	}
	return nil, fmt.Errorf("assertion failed: expected %s (%s), got %s (%s)",
		expect, expect.Type, actual, actual.Type)
}
