package ast

import "github.com/luthersystems/yascl/parser/token"

// Binding strength of expressions, loosest first.
const (
	LowestPrecedence = iota
	AssignPrecedence
	OrPrecedence
	AndPrecedence
	BitOrPrecedence
	BitAndPrecedence
	EqualityPrecedence
	RelationalPrecedence
	RangePrecedence
	AdditivePrecedence
	MultiplicativePrecedence
	PrefixPrecedence
	PostfixPrecedence
	PrimaryPrecedence
)

var infixPrecedence = map[token.Type]int{
	token.OR:       OrPrecedence,
	token.AND:      AndPrecedence,
	token.BIT_OR:   BitOrPrecedence,
	token.BIT_AND:  BitAndPrecedence,
	token.EQ:       EqualityPrecedence,
	token.NE:       EqualityPrecedence,
	token.LT:       RelationalPrecedence,
	token.LE:       RelationalPrecedence,
	token.GT:       RelationalPrecedence,
	token.GE:       RelationalPrecedence,
	token.RANGE:    RangePrecedence,
	token.PLUS:     AdditivePrecedence,
	token.MINUS:    AdditivePrecedence,
	token.ASTERISK: MultiplicativePrecedence,
	token.SLASH:    MultiplicativePrecedence,
}

// InfixPrecedence returns the binding strength of the binary operator typ, or
// LowestPrecedence if typ is not a binary operator.
func InfixPrecedence(typ token.Type) int {
	return infixPrecedence[typ]
}

// Precedence returns the binding strength of the operator at the root of e.
func Precedence(e Expression) int {
	switch e := e.(type) {
	case *AssignExpression:
		return AssignPrecedence
	case *InfixExpression:
		return InfixPrecedence(e.Operator)
	case *PrefixExpression:
		return PrefixPrecedence
	case *CallExpression, *IndexExpression:
		return PostfixPrecedence
	default:
		return PrimaryPrecedence
	}
}
