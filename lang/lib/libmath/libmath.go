// Package libmath provides numeric functions that accept integers and floats
// alike.  Unlike the arithmetic operators they convert integer arguments to
// floats where needed.
package libmath

import (
	"fmt"
	"math"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib/internal/libutil"
)

// LoadPackage adds the math functions and constants to env
func LoadPackage(env *lang.Env) error {
	env.Set("pi", lang.Float(math.Pi))
	env.Set("inf", lang.Float(math.Inf(1)))
	return env.AddBuiltins(builtins...)
}

var builtins = []lang.BuiltinDef{
	libutil.Function("abs", lang.Formals("number"), builtinAbs),
	libutil.Function("ceil", lang.Formals("number"), builtinCeil),
	libutil.Function("floor", lang.Formals("number"), builtinFloor),
	libutil.Function("sqrt", lang.Formals("number"), builtinSqrt),
	libutil.Function("pow", lang.Formals("base", "exponent"), builtinPow),
	libutil.Function("exp", lang.Formals("number"), builtinExp),
	libutil.Function("ln", lang.Formals("number"), builtinLn),
	libutil.Function("min", lang.Formals("number", lang.VarArgSymbol, "rest"), builtinMin),
	libutil.Function("max", lang.Formals("number", lang.VarArgSymbol, "rest"), builtinMax),
}

func builtinAbs(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	x := args[0]
	switch x.Type {
	case lang.TInteger:
		if x.Int < 0 {
			return lang.Int(-x.Int), nil
		}
		return x, nil
	case lang.TFloat:
		return lang.Float(math.Abs(x.Float)), nil
	}
	return nil, fmt.Errorf("argument is not a number: %s", x.Type)
}

func builtinCeil(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return rounding(args[0], math.Ceil)
}

func builtinFloor(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return rounding(args[0], math.Floor)
}

func rounding(x *lang.Value, fn func(float64) float64) (*lang.Value, error) {
	if x.Type == lang.TInteger {
		return x, nil
	}
	f, err := libutil.Numeric(x)
	if err != nil {
		return nil, err
	}
	return lang.Float(fn(f)), nil
}

func builtinSqrt(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return floatFunc(args[0], math.Sqrt)
}

func builtinExp(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return floatFunc(args[0], math.Exp)
}

func builtinLn(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return floatFunc(args[0], math.Log)
}

func floatFunc(x *lang.Value, fn func(float64) float64) (*lang.Value, error) {
	f, err := libutil.Numeric(x)
	if err != nil {
		return nil, err
	}
	return lang.Float(fn(f)), nil
}

// builtinPow computes an integer power when both arguments are integers and
// the exponent is not negative.
func builtinPow(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	b, x := args[0], args[1]
	if b.Type == lang.TInteger && x.Type == lang.TInteger && x.Int >= 0 {
		result := int64(1)
		base := b.Int
		for n := x.Int; n > 0; n >>= 1 {
			if n&1 == 1 {
				result *= base
			}
			base *= base
		}
		return lang.Int(result), nil
	}
	fb, err := libutil.Numeric(b)
	if err != nil {
		return nil, err
	}
	fx, err := libutil.Numeric(x)
	if err != nil {
		return nil, err
	}
	return lang.Float(math.Pow(fb, fx)), nil
}

func builtinMin(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return extremum(args, func(a, b float64) bool { return a < b })
}

func builtinMax(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	return extremum(args, func(a, b float64) bool { return a > b })
}

// extremum returns the argument preferred by better.  The first of several
// equal arguments wins.
func extremum(args []*lang.Value, better func(a, b float64) bool) (*lang.Value, error) {
	best := args[0]
	fbest, err := libutil.Numeric(best)
	if err != nil {
		return nil, err
	}
	for _, x := range args[1:] {
		fx, err := libutil.Numeric(x)
		if err != nil {
			return nil, err
		}
		if better(fx, fbest) {
			best, fbest = x, fx
		}
	}
	return best, nil
}
