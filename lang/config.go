package lang

import (
	"fmt"
	"io"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *Env) error

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing more than n nested function calls.  The limit
// cannot be disabled, n must be positive.
func WithMaximumStackHeight(n int) Config {
	return func(env *Env) error {
		if n < 1 {
			return fmt.Errorf("maximum stack height must be positive: %d", n)
		}
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *Env) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes environments write program output to
// w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *Env) error {
		env.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *Env) error {
		env.Runtime.Stderr = w
		return nil
	}
}

// WithExit returns a Config that makes the exit builtin call fn instead of
// the default, os.Exit.
func WithExit(fn func(code int)) Config {
	return func(env *Env) error {
		env.Runtime.Exit = fn
		return nil
	}
}
