package lang

import (
	"unicode/utf8"

	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/parser/token"
)

// evalPrefix applies a unary operator.  Negation is defined on numbers and
// logical not on booleans only.
func (env *Env) evalPrefix(e *ast.PrefixExpression, right *Value) (*Value, error) {
	switch {
	case e.Operator == token.MINUS && right.Type == TInteger:
		return Int(-right.Int), nil
	case e.Operator == token.MINUS && right.Type == TFloat:
		return Float(-right.Float), nil
	case e.Operator == token.BANG && right.Type == TBoolean:
		return Bool(!right.Bool), nil
	}
	return nil, env.Errorf(e.Pos(), "operator '%s' not defined for type %s", e.Operator, right.Type)
}

// evalInfix dispatches a binary operator on the types of both operands.
// Numbers are never converted implicitly.
func (env *Env) evalInfix(e *ast.InfixExpression, left, right *Value) (*Value, error) {
	switch e.Operator {
	case token.EQ:
		return Bool(left.Equal(right)), nil
	case token.NE:
		return Bool(!left.Equal(right)), nil
	case token.AND:
		return Bool(left.IsTruthy() && right.IsTruthy()), nil
	case token.OR:
		return Bool(left.IsTruthy() || right.IsTruthy()), nil
	}
	switch {
	case left.Type == TInteger && right.Type == TInteger:
		return env.integerOp(e, left.Int, right.Int)
	case left.Type == TFloat && right.Type == TFloat:
		return env.floatOp(e, left.Float, right.Float)
	case left.Type == TString && right.Type == TString && e.Operator == token.PLUS:
		return String(left.Str + right.Str), nil
	}
	return nil, env.operatorError(e, left, right)
}

func (env *Env) integerOp(e *ast.InfixExpression, a, b int64) (*Value, error) {
	switch e.Operator {
	case token.PLUS:
		return Int(a + b), nil
	case token.MINUS:
		return Int(a - b), nil
	case token.ASTERISK:
		return Int(a * b), nil
	case token.SLASH:
		if b == 0 {
			return nil, env.Errorf(e.Pos(), "division by zero")
		}
		return Int(a / b), nil
	case token.LT:
		return Bool(a < b), nil
	case token.LE:
		return Bool(a <= b), nil
	case token.GT:
		return Bool(a > b), nil
	case token.GE:
		return Bool(a >= b), nil
	case token.BIT_AND:
		return Int(a & b), nil
	case token.BIT_OR:
		return Int(a | b), nil
	case token.RANGE:
		return Range(a, b), nil
	}
	return nil, env.operatorError(e, Int(a), Int(b))
}

func (env *Env) floatOp(e *ast.InfixExpression, a, b float64) (*Value, error) {
	switch e.Operator {
	case token.PLUS:
		return Float(a + b), nil
	case token.MINUS:
		return Float(a - b), nil
	case token.ASTERISK:
		return Float(a * b), nil
	case token.SLASH:
		return Float(a / b), nil
	case token.LT:
		return Bool(a < b), nil
	case token.LE:
		return Bool(a <= b), nil
	case token.GT:
		return Bool(a > b), nil
	case token.GE:
		return Bool(a >= b), nil
	}
	return nil, env.operatorError(e, Float(a), Float(b))
}

func (env *Env) operatorError(e *ast.InfixExpression, left, right *Value) error {
	return env.Errorf(e.Pos(), "operator '%s' not defined for types %s, %s", e.Operator, left.Type, right.Type)
}

// evalIndex looks up index in target.  Arrays accept integer positions and
// ranges, strings accept the same by rune position, hashes accept string
// keys.
func (env *Env) evalIndex(e *ast.IndexExpression, target, index *Value) (*Value, error) {
	switch {
	case target.Type == TArray && index.Type == TInteger:
		i := index.Int
		if i < 0 || i >= int64(len(target.Cells)) {
			return nil, env.Errorf(e.Pos(), "index %d out of range for array of length %d", i, len(target.Cells))
		}
		return target.Cells[i], nil
	case target.Type == TArray && index.Type == TRange:
		n := int64(len(target.Cells))
		if !inBounds(index, n) {
			return nil, env.Errorf(e.Pos(), "range %d..%d out of bounds for array of length %d", index.From, index.To, n)
		}
		cells := make([]*Value, index.To-index.From)
		copy(cells, target.Cells[index.From:index.To])
		return Array(cells), nil
	case target.Type == THash && index.Type == TString:
		v, ok := HashGet(target, index.Str)
		if !ok {
			return nil, env.Errorf(e.Pos(), "key '%s' not found in hash", index.Str)
		}
		return v, nil
	case target.Type == TString && index.Type == TInteger:
		runes := []rune(target.Str)
		i := index.Int
		if i < 0 || i >= int64(len(runes)) {
			return nil, env.Errorf(e.Pos(), "index %d out of range for string of length %d", i, len(runes))
		}
		return String(string(runes[i])), nil
	case target.Type == TString && index.Type == TRange:
		runes := []rune(target.Str)
		n := int64(len(runes))
		if !inBounds(index, n) {
			return nil, env.Errorf(e.Pos(), "range %d..%d out of bounds for string of length %d", index.From, index.To, n)
		}
		return String(string(runes[index.From:index.To])), nil
	}
	return nil, env.Errorf(e.Pos(), "value of type %s is not indexable with %s", target.Type, index.Type)
}

func inBounds(r *Value, n int64) bool {
	return 0 <= r.From && r.From <= r.To && r.To <= n
}

// runeCount returns the number of characters in s.
func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
