// Package yascltest runs yascl programs as Go tests.
package yascltest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib"
	"github.com/luthersystems/yascl/lang/lib/libtesting"
	"github.com/luthersystems/yascl/langerr"
	"github.com/stretchr/testify/assert"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the library loader used to initialize the test environment.
	// When Loader is nil lib.LoadLibrary is used.
	Loader func(*lang.Env) error
	// Config is applied to every environment the runner creates.
	Config []lang.Config
}

// NewEnv returns a root environment with the core builtins, the Runner's
// library and the testing package loaded.
func (r *Runner) NewEnv() (*lang.Env, error) {
	if r.Loader == nil {
		env, err := lib.NewEnv(r.Config...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize environment: %w", err)
		}
		return env, nil
	}
	env := lang.NewEnv()
	err := lang.InitializeUserEnv(env, r.Config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize environment: %w", err)
	}
	err = r.Loader(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	if libtesting.EnvTestSuite(env) == nil {
		err = libtesting.LoadPackage(env)
		if err != nil {
			return nil, fmt.Errorf("failed to load testing package: %w", err)
		}
	}
	return env, nil
}

// RunTestFile loads the script at path and runs each test it declares with
// test(name, fun) as a subtest of t.  Every test runs in a freshly loaded
// environment.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		suite, _, err := r.load(path, source)
		if err != nil {
			t.Error(err.Error())
			return
		}
		names = make([]string, suite.Len())
		for i := range names {
			names[i] = suite.Test(i).Name
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// We don't check the result of t.Run here because we want all
		// independent tests to run during a single run of the suite.
		t.Run(names[i], func(t *testing.T) {
			suite, env, err := r.load(path, source)
			if err != nil {
				t.Error(err.Error())
				return
			}
			test := suite.Test(i)
			err = test.Run(env)
			if err != nil {
				t.Errorf("%s: %s", test.Name, trace(err))
			}
		})
	}
}

func (r *Runner) load(path string, source []byte) (*libtesting.TestSuite, *lang.Env, error) {
	env, err := r.NewEnv()
	if err != nil {
		return nil, nil, err
	}
	_, err = env.Load(filepath.Base(path), bytes.NewReader(source))
	if err != nil {
		return nil, nil, fmt.Errorf("%s", trace(err))
	}
	suite := libtesting.EnvTestSuite(env)
	if suite == nil {
		return nil, nil, fmt.Errorf("unable to locate test suite")
	}
	return suite, env, nil
}

func trace(err error) string {
	lerr, ok := err.(*langerr.Error)
	if !ok {
		return err.Error()
	}
	var buf bytes.Buffer
	lerr.WriteTrace(&buf)
	return buf.String()
}

// TestSequence is a sequence of yascl programs which are evaluated
// sequentially in one environment.
type TestSequence []struct {
	Expr   string // a yascl program
	Result string // the displayed result, or the error text
	Output string // text written to stdout while evaluating Expr
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated environments.
// Programs are read from the file "test".  Calls to exit are recorded in the
// output as "<exit N>" instead of terminating the process.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var out bytes.Buffer
		env, err := lib.NewEnv(
			lang.WithStdout(&out),
			lang.WithStderr(&out),
			lang.WithExit(func(code int) { fmt.Fprintf(&out, "<exit %d>", code) }),
		)
		if !assert.NoError(t, err, "test %d %q", i, test.Name) {
			continue
		}
		for j, expr := range test.TestSequence {
			out.Reset()
			var result string
			v, err := env.EvalSource("test", expr.Expr)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			assert.Equal(t, expr.Result, result, "test %d %q: expr %d: %s", i, test.Name, j, expr.Expr)
			assert.Equal(t, expr.Output, out.String(), "test %d %q: expr %d: output", i, test.Name, j)
		}
	}
}

// BenchmarkParse returns a benchmark that parses the file at path with
// readers created by newReader.
func BenchmarkParse(path string, newReader func() lang.Reader) func(*testing.B) {
	return func(b *testing.B) {
		source, err := os.ReadFile(path)
		if err != nil {
			b.Fatalf("Unable to read source file: %v", err)
		}
		b.SetBytes(int64(len(source)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := newReader().Read(filepath.Base(path), bytes.NewReader(source))
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
