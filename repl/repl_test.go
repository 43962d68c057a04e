package repl

import (
	"bytes"
	"testing"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env, err := lib.NewEnv(lang.WithStdout(&stdout), lang.WithStderr(&stderr))
	require.NoError(t, err)
	return NewSession(env, &stdout, &stderr), &stdout, &stderr
}

func TestSession(t *testing.T) {
	sess, stdout, stderr := newTestSession(t)
	assert.Equal(t, "|> ", sess.Prompt())

	sess.Line("let x = 2")
	sess.Line("x * 21")
	assert.Equal(t, "2\n42\n", stdout.String())
	assert.Empty(t, stderr.String())

	// null results are not printed
	stdout.Reset()
	sess.Line("if false { 1 }")
	sess.Line("")
	assert.Empty(t, stdout.String())
}

func TestSessionContinuation(t *testing.T) {
	sess, stdout, _ := newTestSession(t)

	sess.Line("let add = fun(a, b) {")
	assert.Equal(t, "   ", sess.Prompt())
	sess.Line("  a + b")
	sess.Line("}")
	assert.Equal(t, "|> ", sess.Prompt())
	sess.Line("add(1,")
	sess.Line("2)")
	assert.Equal(t, "<function(a, b)>\n3\n", stdout.String())

	stdout.Reset()
	sess.Line("[1, 2,")
	sess.Interrupt()
	assert.Equal(t, "|> ", sess.Prompt())
	sess.Line("3")
	assert.Equal(t, "3\n", stdout.String())
}

func TestSessionErrors(t *testing.T) {
	sess, stdout, stderr := newTestSession(t)

	sess.Line("1 / 0")
	sess.Line("let = 3")
	sess.Line("1 $")
	assert.Equal(t, "RuntimeError: stdin:1:3: division by zero\n"+
		"ParserError: stdin:1:5: unexpected token '=', expected identifier\n"+
		"LexerError: stdin:1:3: unexpected character '$'\n", stderr.String())

	// the session continues after errors
	sess.Line("7")
	assert.Equal(t, "7\n", stdout.String())
}

func TestSessionTrace(t *testing.T) {
	sess, _, stderr := newTestSession(t)
	sess.Trace = true

	sess.Line("let f = fun() { 1 / 0 }")
	sess.Line("f()")
	assert.Equal(t, "RuntimeError: stdin:1:19: division by zero\n"+
		"Stack Trace [1 frames -- entrypoint last]:\n"+
		"  height 0: f (called at stdin:1:2)\n", stderr.String())
}

func TestSessionScopes(t *testing.T) {
	sess, stdout, _ := newTestSession(t)
	root := sess.Env()

	sess.Line("mut n = 1")
	sess.Line("n = n + 1")
	sess.Line("let n2 = n * 10")
	sess.Line("n2")
	assert.Equal(t, "1\n2\n20\n20\n", stdout.String())

	// one frame per unit of input
	depth := 0
	for env := sess.Env(); env.ID != root.ID; env = env.Parent() {
		depth++
	}
	assert.Equal(t, 4, depth)
}

func TestCompleter(t *testing.T) {
	sess, _, _ := newTestSession(t)
	sess.Line("let counter = 0")
	c := &completer{sess}

	line := []rune("1 + cou")
	candidates, n := c.Do(line, len(line))
	assert.Equal(t, 3, n)
	assert.Equal(t, [][]rune{[]rune("nter")}, candidates)

	line = []rune("json_")
	candidates, n = c.Do(line, len(line))
	assert.Equal(t, 5, n)
	assert.Equal(t, [][]rune{[]rune("decode"), []rune("encode")}, candidates)

	candidates, n = c.Do([]rune("x + "), 4)
	assert.Nil(t, candidates)
	assert.Equal(t, 0, n)
}

func TestGreeting(t *testing.T) {
	t.Setenv("LOGNAME", "ada")
	assert.Equal(t, "Hello ada! Welcome to YASCL REPL.", Greeting())
	t.Setenv("LOGNAME", "")
	assert.Equal(t, "Hello anonymous! Welcome to YASCL REPL.", Greeting())
}
