// Package langerr defines the errors produced while lexing, parsing and
// evaluating yascl programs.
package langerr

import (
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/yascl/parser/token"
)

// Kind classifies an Error by the pipeline stage that produced it.
type Kind uint

// Kinds of language errors.
const (
	Invalid Kind = iota
	Lexer
	Parser
	Runtime
)

var kindStrings = []string{
	Invalid: "Invalid",
	Lexer:   "Lexer",
	Parser:  "Parser",
	Runtime: "Runtime",
}

func (k Kind) String() string {
	if int(k) >= len(kindStrings) {
		return kindStrings[Invalid]
	}
	return kindStrings[k]
}

// StackTrace is implemented by call stacks that can be attached to runtime
// errors.
type StackTrace interface {
	DebugPrint(w io.Writer) (int, error)
}

// Error is a lexer, parser or runtime error.  Errors terminate the evaluation
// unit that produced them.
type Error struct {
	Kind   Kind
	Msg    string
	Source *token.Location
	Stack  StackTrace
}

// New returns an Error of the given kind.
func New(kind Kind, loc *token.Location, msg string) *Error {
	return &Error{
		Kind:   kind,
		Msg:    msg,
		Source: loc,
	}
}

// Errorf returns an Error of the given kind with a formatted message.
func Errorf(kind Kind, loc *token.Location, format string, v ...interface{}) *Error {
	return New(kind, loc, fmt.Sprintf(format, v...))
}

// Error implements the error interface.
func (err *Error) Error() string {
	if err.Source == nil {
		return fmt.Sprintf("%sError: %s", err.Kind, err.Msg)
	}
	return fmt.Sprintf("%sError: %s: %s", err.Kind, err.Source, err.Msg)
}

// WriteTrace writes err followed by its call stack, when one is attached.
func (err *Error) WriteTrace(w io.Writer) (int, error) {
	n, e := fmt.Fprintln(w, err.Error())
	if e != nil || err.Stack == nil {
		return n, e
	}
	_n, e := err.Stack.DebugPrint(w)
	return n + _n, e
}

// KindOf returns the Kind of the first *Error in err's chain, or Invalid when
// err is not a language error.
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return Invalid
}

// Is returns true if err is a language error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
