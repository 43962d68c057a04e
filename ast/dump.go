package ast

import (
	"bytes"
	"strconv"
)

// Dump renders n as a fully parenthesized s-expression.  Two trees are
// structurally equal exactly when their dumps are equal, regardless of the
// source locations recorded in their tokens.
func Dump(n Node) string {
	var buf bytes.Buffer
	dump(&buf, n)
	return buf.String()
}

func dump(buf *bytes.Buffer, n Node) {
	switch n := n.(type) {
	case *Program:
		for i, s := range n.Statements {
			if i > 0 {
				buf.WriteString(" ")
			}
			dump(buf, s)
		}
	case *LetStatement:
		list(buf, "let", n.Name, n.Value)
	case *MutStatement:
		list(buf, "mut", n.Name, n.Value)
	case *ReturnStatement:
		list(buf, "return", n.Value)
	case *ExpressionStatement:
		dump(buf, n.Expression)
	case *Identifier:
		buf.WriteString(n.Name)
	case *IntegerLiteral:
		buf.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		buf.WriteString(FormatFloat(n.Value))
	case *StringLiteral:
		buf.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		buf.WriteString(strconv.FormatBool(n.Value))
	case *ArrayLiteral:
		list(buf, "array", exprNodes(n.Elements)...)
	case *HashLiteral:
		buf.WriteString("(hash")
		for _, pair := range n.Pairs {
			buf.WriteString(" (")
			dump(buf, pair.Key)
			buf.WriteString(" ")
			dump(buf, pair.Value)
			buf.WriteString(")")
		}
		buf.WriteString(")")
	case *IndexExpression:
		list(buf, "index", n.Target, n.Index)
	case *PrefixExpression:
		list(buf, n.Operator.String(), n.Right)
	case *InfixExpression:
		list(buf, n.Operator.String(), n.Left, n.Right)
	case *BlockExpression:
		nodes := make([]Node, len(n.Statements))
		for i, s := range n.Statements {
			nodes[i] = s
		}
		list(buf, "block", nodes...)
	case *IfExpression:
		if n.Alternative == nil {
			list(buf, "if", n.Condition, n.Consequence)
		} else {
			list(buf, "if", n.Condition, n.Consequence, n.Alternative)
		}
	case *FunctionLiteral:
		buf.WriteString("(fun (")
		for i, p := range n.Parameters {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(p.Name)
		}
		buf.WriteString(") ")
		dump(buf, n.Body)
		buf.WriteString(")")
	case *CallExpression:
		list(buf, "call", append([]Node{n.Function}, exprNodes(n.Arguments)...)...)
	case *AssignExpression:
		list(buf, "=", n.Name, n.Value)
	default:
		buf.WriteString("<invalid>")
	}
}

func list(buf *bytes.Buffer, head string, nodes ...Node) {
	buf.WriteString("(")
	buf.WriteString(head)
	for _, n := range nodes {
		buf.WriteString(" ")
		dump(buf, n)
	}
	buf.WriteString(")")
}

func exprNodes(exprs []Expression) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
