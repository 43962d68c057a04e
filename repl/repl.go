// Package repl implements the interactive yascl shell.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib"
	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/rdparser"
)

// Config controls a REPL.
type Config struct {
	// Prompt is displayed before each new unit of input.  The continuation
	// prompt is a string of spaces of the same width.
	Prompt string
	// HistoryFile persists input history when it is not empty.
	HistoryFile string
	// Greeting prints a welcome message when the REPL starts.
	Greeting bool
	// PrintResults prints the value of each unit unless it is null.
	PrintResults bool
	// Trace prints the call stack attached to runtime errors.
	Trace bool
	// Env configures the root environment.
	Env []lang.Config

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns the Config used by the yascl command.
func DefaultConfig() *Config {
	return &Config{
		Prompt:       "|> ",
		Greeting:     true,
		PrintResults: true,
	}
}

// RunRepl runs a simple repl until its input ends.
func RunRepl(cfg *Config) error {
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if cfg.Greeting {
		fmt.Fprintln(stdout, Greeting())
	}

	var rl *readline.Instance
	envConfig := append([]lang.Config{
		lang.WithStdout(stdout),
		lang.WithStderr(stderr),
		lang.WithExit(func(code int) {
			if rl != nil {
				rl.Close()
			}
			os.Exit(code)
		}),
	}, cfg.Env...)
	env, err := lib.NewEnv(envConfig...)
	if err != nil {
		return err
	}
	sess := NewSession(env, stdout, stderr)
	sess.PrintResults = cfg.PrintResults
	sess.Trace = cfg.Trace
	if cfg.Prompt != "" {
		sess.SetPrompt(cfg.Prompt)
	}

	rl, err = readline.NewEx(&readline.Config{
		Prompt:          sess.Prompt(),
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    &completer{sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           cfg.Stdin,
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sess.Interrupt()
			rl.SetPrompt(sess.Prompt())
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		sess.Line(line)
		rl.SetPrompt(sess.Prompt())
	}
}

// Greeting returns the REPL welcome message for the current user.
func Greeting() string {
	user := os.Getenv("LOGNAME")
	if user == "" {
		user = "anonymous"
	}
	return fmt.Sprintf("Hello %s! Welcome to YASCL REPL.", user)
}

// Session evaluates lines of interactive input.  Each complete unit of input
// is evaluated in a new child scope of the previous unit's scope, so bindings
// accumulate over the session.
type Session struct {
	PrintResults bool
	Trace        bool

	env    *lang.Env
	parser *rdparser.Interactive
	stdout io.Writer
	stderr io.Writer
}

// NewSession returns a Session evaluating input in child scopes of env.
func NewSession(env *lang.Env, stdout, stderr io.Writer) *Session {
	return &Session{
		PrintResults: true,
		env:          env,
		parser:       rdparser.NewInteractive("stdin"),
		stdout:       stdout,
		stderr:       stderr,
	}
}

// SetPrompt changes the primary prompt.  The continuation prompt is changed
// to match its width.
func (s *Session) SetPrompt(prompt string) {
	s.parser.PS1 = prompt
	s.parser.PS2 = strings.Repeat(" ", len(prompt)) // prompt had better be ascii...
}

// Prompt returns the prompt for the next line of input.
func (s *Session) Prompt() string {
	return s.parser.Prompt()
}

// Interrupt discards buffered input.
func (s *Session) Interrupt() {
	s.parser.Reset()
}

// Env returns the scope of the most recently evaluated unit.
func (s *Session) Env() *lang.Env {
	return s.env
}

// Line adds a line of input.  When the buffered input forms a complete unit
// it is evaluated and its result or error is printed.  Errors never end the
// session.
func (s *Session) Line(line string) {
	prog, err := s.parser.ParseLine(line)
	if err != nil {
		s.printError(err)
		return
	}
	if prog == nil || len(prog.Statements) == 0 {
		return
	}
	s.env = s.env.Extend()
	v, err := s.env.EvalProgram(prog)
	if err != nil {
		s.printError(err)
		return
	}
	if s.PrintResults && !v.IsNull() {
		fmt.Fprintln(s.stdout, v)
	}
}

func (s *Session) printError(err error) {
	var lerr *langerr.Error
	if s.Trace && errors.As(err, &lerr) {
		lerr.WriteTrace(s.stderr)
		return
	}
	fmt.Fprintln(s.stderr, err)
}

type completer struct {
	sess *Session
}

// Do completes the identifier that ends at pos with the names visible in the
// session.
func (c *completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	start := pos
	for start > 0 && isIdent(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	for _, name := range c.sess.Env().Names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			newLine = append(newLine, []rune(name[len(prefix):]))
		}
	}
	return newLine, len(prefix)
}

func isIdent(c rune) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
