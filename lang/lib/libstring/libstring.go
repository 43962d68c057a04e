package libstring

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/lang/lib/internal/libutil"
)

// LoadPackage adds the string functions to env
func LoadPackage(env *lang.Env) error {
	return env.AddBuiltins(builtins...)
}

var builtins = []lang.BuiltinDef{
	libutil.Function("upper", lang.Formals("str"), builtinUpper),
	libutil.Function("lower", lang.Formals("str"), builtinLower),
	libutil.Function("trim", lang.Formals("str"), builtinTrim),
	libutil.Function("split", lang.Formals("str", "sep"), builtinSplit),
	libutil.Function("join", lang.Formals("arr", "sep"), builtinJoin),
	libutil.Function("contains", lang.Formals("str", "substr"), builtinContains),
	libutil.Function("format", lang.Formals("format-string", lang.VarArgSymbol, "values"), builtinFormat),
}

func builtinUpper(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return lang.String(strings.ToUpper(s)), nil
}

func builtinLower(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return lang.String(strings.ToLower(s)), nil
}

func builtinTrim(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	return lang.String(strings.TrimSpace(s)), nil
}

func builtinSplit(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	sep, err := libutil.Str(args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	cells := make([]*lang.Value, len(parts))
	for i := range parts {
		cells[i] = lang.String(parts[i])
	}
	return lang.Array(cells), nil
}

func builtinJoin(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	arr := args[0]
	if arr.Type != lang.TArray {
		return nil, fmt.Errorf("first argument is not an array: %s", arr.Type)
	}
	sep, err := libutil.Str(args[1])
	if err != nil {
		return nil, err
	}
	strs := make([]string, len(arr.Cells))
	for i, v := range arr.Cells {
		strs[i] = v.String()
	}
	return lang.String(strings.Join(strs, sep)), nil
}

func builtinContains(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	s, err := libutil.Str(args[0])
	if err != nil {
		return nil, err
	}
	sub, err := libutil.Str(args[1])
	if err != nil {
		return nil, err
	}
	return lang.Bool(strings.Contains(s, sub)), nil
}

// builtinFormat substitutes its values for the "{}" directives in the format
// string, in order.  Literal braces are written "{{" and "}}".
func builtinFormat(env *lang.Env, args []*lang.Value) (*lang.Value, error) {
	format := args[0]
	fvals := args[1:]
	if format.Type != lang.TString {
		return nil, fmt.Errorf("first argument is not a string")
	}
	parts, err := parseFormatString(format.Str)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	anonIndex := 0
	for _, p := range parts {
		if len(p) > 1 && strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			p = strings.Join(strings.Fields(p), "")
			if p != "{}" {
				return nil, fmt.Errorf("formatting directives must be empty")
			}
			if anonIndex >= len(fvals) {
				return nil, fmt.Errorf("too many formatting directives for supplied values")
			}
			buf.WriteString(fvals[anonIndex].String())
			anonIndex++
		} else {
			buf.WriteString(p)
		}
	}
	return lang.String(buf.String()), nil
}

func parseFormatString(f string) ([]string, error) {
	var s []string
	tokens := tokenizeFormatString(f)
	for len(tokens) > 0 {
		tok := tokens[0]
		if tok.typ == formatText {
			s = append(s, tok.text)
			tokens = tokens[1:]
			continue
		}
		if tok.typ == formatClose {
			if len(tokens) < 2 || tokens[1].typ != formatClose {
				return nil, fmt.Errorf("unexpected closing brace '}' outside of formatting directive")
			}
			s = append(s, "}")
			tokens = tokens[2:]
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("unclosed formatting directive")
		}
		switch tokens[1].typ {
		case formatOpen:
			s = append(s, "{")
			tokens = tokens[2:]
		case formatClose:
			s = append(s, "{}")
			tokens = tokens[2:]
		case formatText:
			if len(tokens) < 3 {
				return nil, fmt.Errorf("unclosed formatting directive")
			}
			if tokens[2].typ != formatClose {
				return nil, fmt.Errorf("invalid formatting directive")
			}
			s = append(s, "{"+tokens[1].text+"}")
			tokens = tokens[3:]
		}
	}
	return s, nil
}

func tokenizeFormatString(f string) []formatToken {
	var tokens []formatToken
	for {
		i := strings.IndexAny(f, "{}")
		if i < 0 {
			if f != "" {
				tokens = append(tokens, formatToken{formatText, f})
			}
			return tokens
		}
		if i > 0 {
			tokens = append(tokens, formatToken{formatText, f[:i]})
			f = f[i:]
		}
		if f[0] == '{' {
			tokens = append(tokens, formatToken{formatOpen, "{"})
		} else {
			tokens = append(tokens, formatToken{formatClose, "}"})
		}
		f = f[1:]
	}
}

type formatTokenType uint

const (
	formatText formatTokenType = iota
	formatOpen
	formatClose
)

type formatToken struct {
	typ  formatTokenType
	text string
}
