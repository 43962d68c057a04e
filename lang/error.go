package lang

import (
	"errors"
	"fmt"

	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/token"
)

// Errors returned by Env.Mutate.
var (
	ErrUnbound   = errors.New("name is not bound")
	ErrImmutable = errors.New("binding is immutable")
)

// Errorf returns a runtime error located at loc.  The current call stack is
// attached to the error.
func (env *Env) Errorf(loc *token.Location, format string, v ...interface{}) error {
	return env.Error(loc, fmt.Errorf(format, v...))
}

// Error converts err into a runtime error located at loc.  Language errors
// are returned unchanged.
func (env *Env) Error(loc *token.Location, err error) error {
	var lerr *langerr.Error
	if errors.As(err, &lerr) {
		return err
	}
	lerr = langerr.New(langerr.Runtime, loc, err.Error())
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}
