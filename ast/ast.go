// Package ast declares the syntax tree produced by the yascl parser.
//
// Every node remembers the token it started with so that evaluation errors
// can point back into the source text.  The String method of a node renders
// source text which parses back into an equivalent tree.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/luthersystems/yascl/parser/token"
)

// Node is implemented by every statement and expression.
type Node interface {
	Pos() *token.Location
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() *token.Location {
	if len(p.Statements) == 0 {
		return nil
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	return joinStatements(p.Statements, "\n")
}

// LetStatement introduces an immutable binding in the current scope.
type LetStatement struct {
	Token *token.Token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode()        {}
func (s *LetStatement) Pos() *token.Location { return s.Token.Source }
func (s *LetStatement) String() string {
	return "let " + s.Name.Name + " = " + s.Value.String()
}

// MutStatement introduces a mutable binding in the current scope.
type MutStatement struct {
	Token *token.Token
	Name  *Identifier
	Value Expression
}

func (s *MutStatement) statementNode()        {}
func (s *MutStatement) Pos() *token.Location { return s.Token.Source }
func (s *MutStatement) String() string {
	return "mut " + s.Name.Name + " = " + s.Value.String()
}

type ReturnStatement struct {
	Token *token.Token
	Value Expression
}

func (s *ReturnStatement) statementNode()        {}
func (s *ReturnStatement) Pos() *token.Location { return s.Token.Source }
func (s *ReturnStatement) String() string {
	return "return " + s.Value.String()
}

type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode()        {}
func (s *ExpressionStatement) Pos() *token.Location { return s.Expression.Pos() }
func (s *ExpressionStatement) String() string       { return s.Expression.String() }

type Identifier struct {
	Token *token.Token
	Name  string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) Pos() *token.Location { return e.Token.Source }
func (e *Identifier) String() string       { return e.Name }

type IntegerLiteral struct {
	Token *token.Token
	Value int64
}

func (e *IntegerLiteral) expressionNode()      {}
func (e *IntegerLiteral) Pos() *token.Location { return e.Token.Source }
func (e *IntegerLiteral) String() string       { return strconv.FormatInt(e.Value, 10) }

type FloatLiteral struct {
	Token *token.Token
	Value float64
}

func (e *FloatLiteral) expressionNode()      {}
func (e *FloatLiteral) Pos() *token.Location { return e.Token.Source }
func (e *FloatLiteral) String() string       { return FormatFloat(e.Value) }

type StringLiteral struct {
	Token *token.Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) Pos() *token.Location { return e.Token.Source }
func (e *StringLiteral) String() string       { return `"` + e.Value + `"` }

type BooleanLiteral struct {
	Token *token.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) Pos() *token.Location { return e.Token.Source }
func (e *BooleanLiteral) String() string       { return strconv.FormatBool(e.Value) }

type ArrayLiteral struct {
	Token    *token.Token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) Pos() *token.Location { return e.Token.Source }
func (e *ArrayLiteral) String() string {
	return "[" + joinExpressions(e.Elements) + "]"
}

type HashPair struct {
	Key   Expression
	Value Expression
}

// HashLiteral is an ordered list of key/value expression pairs.  The empty
// hash is written {:} because {} is an empty block.
type HashLiteral struct {
	Token *token.Token
	Pairs []HashPair
}

func (e *HashLiteral) expressionNode()      {}
func (e *HashLiteral) Pos() *token.Location { return e.Token.Source }
func (e *HashLiteral) String() string {
	if len(e.Pairs) == 0 {
		return "{:}"
	}
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, pair := range e.Pairs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(pair.Key.String())
		buf.WriteString(": ")
		buf.WriteString(pair.Value.String())
	}
	buf.WriteString("}")
	return buf.String()
}

type IndexExpression struct {
	Token  *token.Token
	Target Expression
	Index  Expression
}

func (e *IndexExpression) expressionNode()      {}
func (e *IndexExpression) Pos() *token.Location { return e.Token.Source }
func (e *IndexExpression) String() string {
	return wrap(e.Target, PostfixPrecedence) + "[" + e.Index.String() + "]"
}

type PrefixExpression struct {
	Token    *token.Token
	Operator token.Type
	Right    Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) Pos() *token.Location { return e.Token.Source }
func (e *PrefixExpression) String() string {
	return e.Operator.String() + wrap(e.Right, PrefixPrecedence)
}

type InfixExpression struct {
	Token    *token.Token
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) Pos() *token.Location { return e.Token.Source }
func (e *InfixExpression) String() string {
	prec := InfixPrecedence(e.Operator)
	return wrap(e.Left, prec) + " " + e.Operator.String() + " " + wrap(e.Right, prec+1)
}

// BlockExpression is a braced statement list.  Its value is the value of its
// last statement.
type BlockExpression struct {
	Token      *token.Token
	Statements []Statement
}

func (e *BlockExpression) expressionNode()      {}
func (e *BlockExpression) Pos() *token.Location { return e.Token.Source }
func (e *BlockExpression) String() string {
	if len(e.Statements) == 0 {
		return "{}"
	}
	return "{ " + joinStatements(e.Statements, " ") + " }"
}

// IfExpression selects between two blocks.  An else-if chain is represented
// as an Alternative block holding a single IfExpression.
type IfExpression struct {
	Token       *token.Token
	Condition   Expression
	Consequence *BlockExpression
	Alternative *BlockExpression
}

func (e *IfExpression) expressionNode()      {}
func (e *IfExpression) Pos() *token.Location { return e.Token.Source }
func (e *IfExpression) String() string {
	s := "if " + e.Condition.String() + " " + e.Consequence.String()
	if e.Alternative != nil {
		s += " else " + e.Alternative.String()
	}
	return s
}

type FunctionLiteral struct {
	Token      *token.Token
	Parameters []*Identifier
	Body       *BlockExpression
}

func (e *FunctionLiteral) expressionNode()      {}
func (e *FunctionLiteral) Pos() *token.Location { return e.Token.Source }
func (e *FunctionLiteral) String() string {
	return "fun(" + strings.Join(e.ParamNames(), ", ") + ") " + e.Body.String()
}

// ParamNames returns the names of the function parameters in order.
func (e *FunctionLiteral) ParamNames() []string {
	names := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		names[i] = p.Name
	}
	return names
}

type CallExpression struct {
	Token     *token.Token
	Function  Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) Pos() *token.Location { return e.Token.Source }
func (e *CallExpression) String() string {
	return wrap(e.Function, PostfixPrecedence) + "(" + joinExpressions(e.Arguments) + ")"
}

// AssignExpression overwrites the nearest existing mutable binding of Name.
type AssignExpression struct {
	Token *token.Token
	Name  *Identifier
	Value Expression
}

func (e *AssignExpression) expressionNode()      {}
func (e *AssignExpression) Pos() *token.Location { return e.Token.Source }
func (e *AssignExpression) String() string {
	return e.Name.Name + " = " + e.Value.String()
}

// FormatFloat renders f so that it always reads back as a float: integral
// values keep a trailing ".0".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".IN") {
		return s
	}
	return s + ".0"
}

func wrap(e Expression, prec int) string {
	if Precedence(e) < prec {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func joinExpressions(exprs []Expression) string {
	strs := make([]string, len(exprs))
	for i, e := range exprs {
		strs[i] = e.String()
	}
	return strings.Join(strs, ", ")
}

func joinStatements(stmts []Statement, sep string) string {
	strs := make([]string, len(stmts))
	for i, s := range stmts {
		strs[i] = s.String()
	}
	return strings.Join(strs, sep)
}
