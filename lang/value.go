package lang

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/luthersystems/yascl/ast"
)

// ValueType is the type of a Value
type ValueType uint

// Possible ValueType values
const (
	TInvalid ValueType = iota
	TNull
	TBoolean
	TInteger
	TFloat
	TString
	TRange
	TArray
	THash
	// TReturn wraps the operand of a return statement while it propagates to
	// the enclosing function call.  It is never visible to programs.
	TReturn
	TFunction
	TBuiltin
)

var valueTypeStrings = []string{
	TInvalid:  "Invalid",
	TNull:     "Null",
	TBoolean:  "Boolean",
	TInteger:  "Integer",
	TFloat:    "Float",
	TString:   "String",
	TRange:    "Range",
	TArray:    "Array",
	THash:     "Hash",
	TReturn:   "Return",
	TFunction: "Function",
	TBuiltin:  "Builtin",
}

func (t ValueType) String() string {
	if int(t) >= len(valueTypeStrings) {
		return valueTypeStrings[TInvalid]
	}
	return valueTypeStrings[t]
}

// Value is a yascl runtime value.  Values are never modified after they are
// constructed so they may be shared freely between scopes.
type Value struct {
	Type ValueType

	Bool  bool
	Int   int64
	Float float64
	Str   string

	// Range bounds.  A range is the half-open interval [From, To).
	From int64
	To   int64

	// Cells holds array elements.  A TReturn value holds the returned value
	// in Cells[0].
	Cells []*Value
	Map   map[string]*Value

	// Variables needed for function values
	Params  []string
	Body    *ast.BlockExpression
	Env     *Env
	Builtin BuiltinDef
}

// Null returns the null value.
func Null() *Value {
	return &Value{Type: TNull}
}

// Bool returns a Value representing b.
func Bool(b bool) *Value {
	return &Value{Type: TBoolean, Bool: b}
}

// Int returns a Value representing the integer x.
func Int(x int64) *Value {
	return &Value{Type: TInteger, Int: x}
}

// Float returns a Value representing the float x.
func Float(x float64) *Value {
	return &Value{Type: TFloat, Float: x}
}

// String returns a Value representing the string s.
func String(s string) *Value {
	return &Value{Type: TString, Str: s}
}

// Range returns a Value representing the half-open interval [from, to).
func Range(from, to int64) *Value {
	return &Value{Type: TRange, From: from, To: to}
}

// Array returns a Value holding cells.  The caller must not modify cells
// afterwards.
func Array(cells []*Value) *Value {
	return &Value{Type: TArray, Cells: cells}
}

// Hash returns a Value holding m.  The caller must not modify m afterwards.
func Hash(m map[string]*Value) *Value {
	if m == nil {
		m = make(map[string]*Value)
	}
	return &Value{Type: THash, Map: m}
}

// Return wraps v in a return marker.
func Return(v *Value) *Value {
	return &Value{Type: TReturn, Cells: []*Value{v}}
}

// Function returns a closure over env with the given parameters and body.
func Function(params []string, body *ast.BlockExpression, env *Env) *Value {
	return &Value{
		Type:   TFunction,
		Params: params,
		Body:   body,
		Env:    env,
	}
}

// BuiltinValue returns a Value that calls the native function def.
func BuiltinValue(def BuiltinDef) *Value {
	return &Value{Type: TBuiltin, Builtin: def}
}

// IsNull returns true if v is the null value.
func (v *Value) IsNull() bool {
	return v.Type == TNull
}

// IsTruthy returns false for null and false and true for every other value.
func (v *Value) IsTruthy() bool {
	switch v.Type {
	case TNull:
		return false
	case TBoolean:
		return v.Bool
	}
	return true
}

// IsCallable returns true if v can be called.
func (v *Value) IsCallable() bool {
	return v.Type == TFunction || v.Type == TBuiltin
}

// Equal compares null, boolean, integer, float and string values
// structurally.  Values of different types, and all other values, are never
// equal.
func (v *Value) Equal(other *Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case TNull:
		return true
	case TBoolean:
		return v.Bool == other.Bool
	case TInteger:
		return v.Int == other.Int
	case TFloat:
		return v.Float == other.Float
	case TString:
		return v.Str == other.Str
	}
	return false
}

// DeepEqual extends Equal to ranges, arrays and hashes.  Functions are equal
// only to themselves.
func (v *Value) DeepEqual(other *Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case TRange:
		return v.From == other.From && v.To == other.To
	case TArray:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].DeepEqual(other.Cells[i]) {
				return false
			}
		}
		return true
	case THash:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for k, x := range v.Map {
			y, ok := other.Map[k]
			if !ok || !x.DeepEqual(y) {
				return false
			}
		}
		return true
	case TFunction, TBuiltin:
		return v == other
	}
	return v.Equal(other)
}

func (v *Value) String() string {
	switch v.Type {
	case TNull:
		return "null"
	case TBoolean:
		return strconv.FormatBool(v.Bool)
	case TInteger:
		return strconv.FormatInt(v.Int, 10)
	case TFloat:
		return ast.FormatFloat(v.Float)
	case TString:
		return v.Str
	case TRange:
		return fmt.Sprintf("%d..%d", v.From, v.To)
	case TArray:
		return arrayString(v)
	case THash:
		return hashString(v)
	case TReturn:
		return v.Cells[0].String()
	case TFunction:
		return "<function(" + strings.Join(v.Params, ", ") + ")>"
	case TBuiltin:
		return "<builtin " + v.Builtin.Name() + ">"
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func arrayString(v *Value) string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString("]")
	return buf.String()
}
