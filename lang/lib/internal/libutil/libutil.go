// Package libutil contains helpers shared by the standard library packages.
package libutil

import (
	"fmt"

	"github.com/luthersystems/yascl/lang"
)

// Function returns a builtin function named name.
func Function(name string, formals []string, fn lang.Builtin) lang.BuiltinDef {
	return lang.NewBuiltin(name, formals, fn)
}

// Numeric returns x as a float64.  Numeric returns an error if x is neither
// an integer nor a float.
func Numeric(x *lang.Value) (float64, error) {
	switch x.Type {
	case lang.TInteger:
		return float64(x.Int), nil
	case lang.TFloat:
		return x.Float, nil
	}
	return 0, fmt.Errorf("argument is not a number: %s", x.Type)
}

// Str returns the string held by x or an error if x is not a string.
func Str(x *lang.Value) (string, error) {
	if x.Type != lang.TString {
		return "", fmt.Errorf("argument is not a string: %s", x.Type)
	}
	return x.Str, nil
}
