package libjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib/internal/libutil"
)

// LoadPackage adds the json functions to env
func LoadPackage(env *lang.Env) error {
	return env.AddBuiltins(Builtins()...)
}

// Builtins returns the package builtin functions.
func Builtins() []lang.BuiltinDef {
	return []lang.BuiltinDef{
		libutil.Function("json_encode", lang.Formals("value"), builtinEncode),
		libutil.Function("json_decode", lang.Formals("json-string"), builtinDecode),
	}
}

// Dump serializes the structure of v as JSON.  Hash keys are written in
// sorted order.  Floats always carry a fraction so that Load restores their
// type.
func Dump(v *lang.Value) ([]byte, error) {
	x, err := GoValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(x)
}

// Load parses b as a single JSON document and returns an equivalent Value.
// Numbers without a fraction or exponent become integers.
func Load(b []byte) (*lang.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x interface{}
	err := dec.Decode(&x)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data following json value")
	}
	return loadInterface(x)
}

func loadInterface(x interface{}) (*lang.Value, error) {
	switch x := x.(type) {
	case nil:
		return lang.Null(), nil
	case bool:
		return lang.Bool(x), nil
	case string:
		return lang.String(x), nil
	case json.Number:
		return loadNumber(x)
	case map[string]interface{}:
		m := make(map[string]*lang.Value, len(x))
		for k, v := range x {
			val, err := loadInterface(v)
			if err != nil {
				return nil, err
			}
			m[k] = val
		}
		return lang.Hash(m), nil
	case []interface{}:
		cells := make([]*lang.Value, len(x))
		for i, v := range x {
			val, err := loadInterface(v)
			if err != nil {
				return nil, err
			}
			cells[i] = val
		}
		return lang.Array(cells), nil
	default:
		return nil, fmt.Errorf("unable to load json type: %T", x)
	}
}

func loadNumber(n json.Number) (*lang.Value, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if x, err := n.Int64(); err == nil {
			return lang.Int(x), nil
		}
	}
	x, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return nil, err
	}
	return lang.Float(x), nil
}

// GoValue converts v to a value encoding/json can marshal.  Ranges, functions
// and non-finite floats have no json representation.
func GoValue(v *lang.Value) (interface{}, error) {
	switch v.Type {
	case lang.TNull:
		return nil, nil
	case lang.TBoolean:
		return v.Bool, nil
	case lang.TInteger:
		return v.Int, nil
	case lang.TFloat:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return nil, fmt.Errorf("float cannot be converted to json: %s", v)
		}
		return json.Number(ast.FormatFloat(v.Float)), nil
	case lang.TString:
		return v.Str, nil
	case lang.TArray:
		s := make([]interface{}, len(v.Cells))
		for i, c := range v.Cells {
			x, err := GoValue(c)
			if err != nil {
				return nil, err
			}
			s[i] = x
		}
		return s, nil
	case lang.THash:
		m := make(map[string]interface{}, len(v.Map))
		for k, c := range v.Map {
			x, err := GoValue(c)
			if err != nil {
				return nil, err
			}
			m[k] = x
		}
		return m, nil
	default:
		return nil, fmt.Errorf("type cannot be converted to json: %s", v.Type)
	}
}

func builtinEncode(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	b, err := Dump(args[0])
	if err != nil {
		return nil, err
	}
	return lang.String(string(b)), nil
}

func builtinDecode(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	js, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return Load([]byte(js))
}
