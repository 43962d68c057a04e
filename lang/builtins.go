package lang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Builtin is a function implemented by the host that performs a yascl
// function call.
type Builtin func(env *Env, args []*Value) (*Value, error)

// BuiltinDef is a built-in function
type BuiltinDef interface {
	Name() string
	Formals() []string
	Eval(env *Env, args []*Value) (*Value, error)
}

type langBuiltin struct {
	name    string
	formals []string
	fun     Builtin
}

// NewBuiltin returns a BuiltinDef named name which calls fn.  The number of
// arguments fn receives is checked against formals before each call.
func NewBuiltin(name string, formals []string, fn Builtin) BuiltinDef {
	return &langBuiltin{name, formals, fn}
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *Env, args []*Value) (*Value, error) {
	return fun.fun(env, args)
}

// Formals returns a list of formal argument names.  A VarArgSymbol marks the
// following (final) name as collecting any remaining arguments.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

// checkArity returns an error if n arguments cannot be bound to formals.
func checkArity(formals []string, n int) error {
	for i, name := range formals {
		if name == VarArgSymbol {
			if n < i {
				return fmt.Errorf("expected at least %d argument(s), got %d", i, n)
			}
			return nil
		}
	}
	if n != len(formals) {
		return fmt.Errorf("expected %d argument(s), got %d", len(formals), n)
	}
	return nil
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"len", Formals("value"), builtinLen},
	{"first", Formals("arr"), builtinFirst},
	{"rest", Formals("arr"), builtinRest},
	{"append", Formals("arr", VarArgSymbol, "values"), builtinAppend},
	{"exit", Formals(VarArgSymbol, "code"), builtinExit},
	{"write", Formals(VarArgSymbol, "values"), builtinWrite},
	{"print", Formals(VarArgSymbol, "values"), builtinWrite},
	{"type", Formals("value"), builtinType},
	{"str", Formals("value"), builtinStr},
	{"int", Formals("value"), builtinInt},
	{"float", Formals("value"), builtinFloat},
	{"keys", Formals("hash"), builtinKeys},
	{"put", Formals("hash", "key", "value"), builtinPut},
	{"debug_stack", Formals(), builtinDebugStack},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, formals []string, fn Builtin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn})
}

// DefaultBuiltins returns the default set of BuiltinDefs added to Env objects
// when Env.AddBuiltins is called without arguments.
func DefaultBuiltins() []BuiltinDef {
	ops := make([]BuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

func builtinLen(env *Env, args []*Value) (*Value, error) {
	switch v := args[0]; v.Type {
	case TArray:
		return Int(int64(len(v.Cells))), nil
	case TString:
		return Int(int64(runeCount(v.Str))), nil
	}
	return Null(), nil
}

func builtinFirst(env *Env, args []*Value) (*Value, error) {
	arr := args[0]
	if arr.Type != TArray || len(arr.Cells) == 0 {
		return Null(), nil
	}
	return arr.Cells[0], nil
}

func builtinRest(env *Env, args []*Value) (*Value, error) {
	arr := args[0]
	if arr.Type != TArray || len(arr.Cells) == 0 {
		return Null(), nil
	}
	cells := make([]*Value, len(arr.Cells)-1)
	copy(cells, arr.Cells[1:])
	return Array(cells), nil
}

func builtinAppend(env *Env, args []*Value) (*Value, error) {
	arr := args[0]
	if arr.Type != TArray {
		return nil, fmt.Errorf("first argument is not an array: %s", arr.Type)
	}
	cells := make([]*Value, 0, len(arr.Cells)+len(args)-1)
	cells = append(cells, arr.Cells...)
	cells = append(cells, args[1:]...)
	return Array(cells), nil
}

func builtinExit(env *Env, args []*Value) (*Value, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most 1 argument(s), got %d", len(args))
	}
	code := 0
	if len(args) == 1 {
		if args[0].Type != TInteger {
			return nil, fmt.Errorf("exit code is not an integer: %s", args[0].Type)
		}
		code = int(args[0].Int)
	}
	env.Runtime.Exit(code)
	return Null(), nil
}

// builtinWrite renders its arguments separated by spaces, terminated by a
// newline.
func builtinWrite(env *Env, args []*Value) (*Value, error) {
	strs := make([]string, len(args))
	for i, v := range args {
		strs[i] = v.String()
	}
	_, err := fmt.Fprintln(env.Runtime.Stdout, strings.Join(strs, " "))
	if err != nil {
		return nil, err
	}
	return Null(), nil
}

func builtinType(env *Env, args []*Value) (*Value, error) {
	return String(args[0].Type.String()), nil
}

func builtinStr(env *Env, args []*Value) (*Value, error) {
	return String(args[0].String()), nil
}

func builtinInt(env *Env, args []*Value) (*Value, error) {
	switch v := args[0]; v.Type {
	case TInteger:
		return v, nil
	case TFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) ||
			v.Float >= math.MaxInt64 || v.Float < math.MinInt64 {
			return nil, fmt.Errorf("float out of integer range: %s", v)
		}
		return Int(int64(v.Float)), nil
	case TString:
		x, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to %s", v.Str, TInteger)
		}
		return Int(x), nil
	default:
		return nil, fmt.Errorf("cannot convert value of type %s to %s", v.Type, TInteger)
	}
}

func builtinFloat(env *Env, args []*Value) (*Value, error) {
	switch v := args[0]; v.Type {
	case TFloat:
		return v, nil
	case TInteger:
		return Float(float64(v.Int)), nil
	case TString:
		x, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to %s", v.Str, TFloat)
		}
		return Float(x), nil
	default:
		return nil, fmt.Errorf("cannot convert value of type %s to %s", v.Type, TFloat)
	}
}

func builtinKeys(env *Env, args []*Value) (*Value, error) {
	m := args[0]
	if m.Type != THash {
		return nil, fmt.Errorf("first argument is not a hash: %s", m.Type)
	}
	keys := SortedKeys(m)
	cells := make([]*Value, len(keys))
	for i, k := range keys {
		cells[i] = String(k)
	}
	return Array(cells), nil
}

func builtinPut(env *Env, args []*Value) (*Value, error) {
	m, key := args[0], args[1]
	if m.Type != THash {
		return nil, fmt.Errorf("first argument is not a hash: %s", m.Type)
	}
	if key.Type != TString {
		return nil, fmt.Errorf("cannot use '%s' as a key", key)
	}
	return HashWith(m, key.Str, args[2]), nil
}

func builtinDebugStack(env *Env, args []*Value) (*Value, error) {
	_, err := env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
	if err != nil {
		return nil, err
	}
	return Null(), nil
}
