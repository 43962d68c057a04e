package yascltest

import (
	"testing"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib"
	"github.com/luthersystems/yascl/langerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	tests := TestSuite{
		{"lexer", TestSequence{
			{`"abc`, "LexerError: test:1:1: unterminated string", ""},
			{"1 $ 2", "LexerError: test:1:3: unexpected character '$'", ""},
		}},
		{"parser", TestSequence{
			{"let = 5", "ParserError: test:1:5: unexpected token '=', expected identifier", ""},
			{"(1 + 2", "ParserError: test:1:7: unexpected end of input, expected ')'", ""},
			{"fun(a, a) {}", "ParserError: test:1:8: duplicate parameter 'a'", ""},
		}},
		{"errors do not poison the environment", TestSequence{
			{"let ok = 1", "1", ""},
			{`write("before") 1 / 0 write("after")`, "RuntimeError: test:1:19: division by zero", "before\n"},
			{"ok + 1", "2", ""},
			{"let = 1", "ParserError: test:1:5: unexpected token '=', expected identifier", ""},
			{"ok", "1", ""},
		}},
		{"errors inside calls", TestSequence{
			{"let bad = fun(x) { x / 0 }", "<function(x)>", ""},
			{"bad(1)", "RuntimeError: test:1:22: division by zero", ""},
			{"let wrap = fun() { bad(2) + 1 }", "<function()>", ""},
			{"wrap()", "RuntimeError: test:1:22: division by zero", ""},
			{"len([bad(3)])", "RuntimeError: test:1:22: division by zero", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestErrorKinds(t *testing.T) {
	env, err := lib.NewEnv()
	require.NoError(t, err)

	_, err = env.EvalSource("kinds", `"open`)
	assert.Equal(t, langerr.Lexer, langerr.KindOf(err))
	_, err = env.EvalSource("kinds", "let")
	assert.Equal(t, langerr.Parser, langerr.KindOf(err))
	_, err = env.EvalSource("kinds", "nope")
	assert.Equal(t, langerr.Runtime, langerr.KindOf(err))
	assert.True(t, langerr.Is(err, langerr.Runtime))
}

func TestErrorStack(t *testing.T) {
	env, err := lib.NewEnv()
	require.NoError(t, err)

	_, err = env.EvalSource("stack.yascl", "let inner = fun() { 1 / 0 }\nlet outer = fun() { inner() }\nouter()")
	require.Error(t, err)
	lerr, ok := err.(*langerr.Error)
	require.True(t, ok)
	stack, ok := lerr.Stack.(*lang.CallStack)
	require.True(t, ok)
	if assert.Len(t, stack.Frames, 2) {
		assert.Equal(t, "outer", stack.Frames[0].Name)
		assert.Equal(t, "stack.yascl:3:6", stack.Frames[0].Source.String())
		assert.Equal(t, "inner", stack.Frames[1].Name)
		assert.Equal(t, "stack.yascl:2:26", stack.Frames[1].Source.String())
	}
	// the runtime stack unwinds completely after an error
	assert.Equal(t, 0, env.Runtime.Stack.Height())
}

func TestStackOverflow(t *testing.T) {
	env, err := lib.NewEnv(lang.WithMaximumStackHeight(50))
	require.NoError(t, err)

	_, err = env.EvalSource("test", "let loop = fun(n) { loop(n + 1) }")
	require.NoError(t, err)
	_, err = env.EvalSource("test", "loop(0)")
	assert.EqualError(t, err, "RuntimeError: test:1:25: stack overflow: maximum call depth 50 exceeded calling loop")
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	v, err := env.EvalSource("test", "let down = fun(n) { if n == 0 { 0 } else { down(n - 1) } }\ndown(40)")
	require.NoError(t, err)
	assert.Equal(t, "0", v.String())
}
