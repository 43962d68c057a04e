package rdparser

import (
	"io"
	"strconv"

	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/lexer"
	"github.com/luthersystems/yascl/parser/token"
)

type reader struct {
}

// NewReader returns a lang.Reader to use in a lang.Runtime.
func NewReader() lang.Reader {
	return &reader{}
}

// Read implements lang.Reader.
func (*reader) Read(name string, r io.Reader) (*ast.Program, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	toks, err := lexer.Lex(name, string(b))
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

// Parser is a recursive descent parser for yascl.  Binary operators are
// parsed by precedence climbing over the table in package ast.
type Parser struct {
	src *TokenSource
}

// New initializes and returns a new Parser that reads tokens from toks.
func New(toks []*token.Token) *Parser {
	return NewFromSource(NewTokenSource(toks))
}

// NewFromSource initializes and returns a new Parser that reads tokens from
// src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{src: src}
}

// ParseProgram parses statements until the end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.src.IsEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// ParseStatement parses a let, mut, or return statement or an expression
// statement.  Statements have no terminator.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	switch p.PeekType() {
	case token.LET:
		tok, name, value, err := p.parseBinding(token.LET)
		if err != nil {
			return nil, err
		}
		return &ast.LetStatement{Token: tok, Name: name, Value: value}, nil
	case token.MUT:
		tok, name, value, err := p.parseBinding(token.MUT)
		if err != nil {
			return nil, err
		}
		return &ast.MutStatement{Token: tok, Name: name, Value: value}, nil
	case token.RETURN:
		tok := p.ReadToken()
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Token: tok, Value: value}, nil
	default:
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr}, nil
	}
}

func (p *Parser) parseBinding(keyword token.Type) (*token.Token, *ast.Identifier, ast.Expression, error) {
	if !p.expect(keyword) {
		return nil, nil, nil, p.unexpected("'" + keyword.String() + "'")
	}
	tok := p.Token()
	if !p.expect(token.IDENT) {
		return nil, nil, nil, p.unexpected("identifier")
	}
	name := p.identifier()
	if !p.expect(token.ASSIGN) {
		return nil, nil, nil, p.unexpected("'='")
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, nil, nil, err
	}
	return tok, name, value, nil
}

// ParseExpression parses an expression at the loosest binding strength.  An
// identifier followed by '=' starts a right associative assignment.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	if p.PeekType() == token.IDENT && p.src.Lookahead(1).Type == token.ASSIGN {
		p.ReadToken()
		name := p.identifier()
		p.ReadToken()
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpression{Token: name.Token, Name: name, Value: value}, nil
	}
	return p.parseBinary(ast.OrPrecedence)
}

// parseBinary parses a sequence of binary operations whose operators bind at
// least as strongly as minPrec.  Operators of equal strength fold left.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec := ast.InfixPrecedence(p.PeekType())
		if prec == ast.LowestPrecedence || prec < minPrec {
			return left, nil
		}
		op := p.ReadToken()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.InfixExpression{
			Token:    op,
			Left:     left,
			Operator: op.Type,
			Right:    right,
		}
	}
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.PeekType() {
	case token.BANG, token.MINUS:
		op := p.ReadToken()
		right, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpression{Token: op, Operator: op.Type, Right: right}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.expect(token.PAREN_L):
			tok := p.Token()
			args, err := p.parseExpressionList(token.PAREN_R)
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Token: tok, Function: expr, Arguments: args}
		case p.expect(token.BRACKET_L):
			tok := p.Token()
			index, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if !p.expect(token.BRACKET_R) {
				return nil, p.unexpected("']'")
			}
			expr = &ast.IndexExpression{Token: tok, Target: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		tok := p.ReadToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Text}, nil
	case token.TRUE, token.FALSE:
		tok := p.ReadToken()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}, nil
	case token.IDENT:
		p.ReadToken()
		return p.identifier(), nil
	case token.PAREN_L:
		p.ReadToken()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.expect(token.PAREN_R) {
			return nil, p.unexpected("')'")
		}
		return expr, nil
	case token.BRACKET_L:
		tok := p.ReadToken()
		elems, err := p.parseExpressionList(token.BRACKET_R)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Token: tok, Elements: elems}, nil
	case token.BRACE_L:
		return p.parseBraced()
	case token.IF:
		return p.ParseIf()
	case token.FUN:
		return p.ParseFunction()
	default:
		return nil, p.unexpected("expression")
	}
}

func (p *Parser) ParseLiteralInt() (ast.Expression, error) {
	if !p.expect(token.INT) {
		return nil, p.unexpected("integer")
	}
	tok := p.Token()
	x, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return nil, p.errorf("integer literal overflows int64: %v", tok.Text)
	}
	return &ast.IntegerLiteral{Token: tok, Value: x}, nil
}

func (p *Parser) ParseLiteralFloat() (ast.Expression, error) {
	if !p.expect(token.FLOAT) {
		return nil, p.unexpected("float")
	}
	tok := p.Token()
	x, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return nil, p.errorf("invalid floating point literal: %v", tok.Text)
	}
	return &ast.FloatLiteral{Token: tok, Value: x}, nil
}

// parseBraced parses a hash literal or a block, both of which start with
// '{'.  The contents are a hash when the first expression is followed by ':'.
// The empty hash is written {:}.
func (p *Parser) parseBraced() (ast.Expression, error) {
	if !p.expect(token.BRACE_L) {
		return nil, p.unexpected("'{'")
	}
	open := p.Token()
	switch p.PeekType() {
	case token.BRACE_R:
		p.ReadToken()
		return &ast.BlockExpression{Token: open}, nil
	case token.COLON:
		p.ReadToken()
		if !p.expect(token.BRACE_R) {
			return nil, p.unexpected("'}'")
		}
		return &ast.HashLiteral{Token: open}, nil
	case token.LET, token.MUT, token.RETURN:
		return p.parseBlockBody(open, nil)
	}
	first, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.expect(token.COLON) {
		return p.parseHashBody(open, first)
	}
	return p.parseBlockBody(open, []ast.Statement{&ast.ExpressionStatement{Expression: first}})
}

func (p *Parser) parseHashBody(open *token.Token, key ast.Expression) (ast.Expression, error) {
	hash := &ast.HashLiteral{Token: open}
	for {
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})
		if p.expect(token.BRACE_R) {
			return hash, nil
		}
		if !p.expect(token.COMMA) {
			return nil, p.unexpected("',' or '}'")
		}
		key, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.expect(token.COLON) {
			return nil, p.unexpected("':'")
		}
	}
}

// ParseBlock parses a braced statement list.
func (p *Parser) ParseBlock() (*ast.BlockExpression, error) {
	if !p.expect(token.BRACE_L) {
		return nil, p.unexpected("'{'")
	}
	return p.parseBlockBody(p.Token(), nil)
}

func (p *Parser) parseBlockBody(open *token.Token, stmts []ast.Statement) (*ast.BlockExpression, error) {
	for {
		if p.expect(token.BRACE_R) {
			return &ast.BlockExpression{Token: open, Statements: stmts}, nil
		}
		if p.src.IsEOF() {
			return nil, p.unexpected("'}'")
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// ParseIf parses a conditional.  An else-if chain becomes an alternative
// block containing the nested conditional.
func (p *Parser) ParseIf() (*ast.IfExpression, error) {
	if !p.expect(token.IF) {
		return nil, p.unexpected("'if'")
	}
	expr := &ast.IfExpression{Token: p.Token()}
	var err error
	expr.Condition, err = p.ParseExpression()
	if err != nil {
		return nil, err
	}
	expr.Consequence, err = p.ParseBlock()
	if err != nil {
		return nil, err
	}
	if !p.expect(token.ELSE) {
		return expr, nil
	}
	if p.PeekType() == token.IF {
		nested, err := p.ParseIf()
		if err != nil {
			return nil, err
		}
		expr.Alternative = &ast.BlockExpression{
			Token:      nested.Token,
			Statements: []ast.Statement{&ast.ExpressionStatement{Expression: nested}},
		}
		return expr, nil
	}
	expr.Alternative, err = p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseFunction parses a function literal.  Parameter names must be
// distinct.
func (p *Parser) ParseFunction() (*ast.FunctionLiteral, error) {
	if !p.expect(token.FUN) {
		return nil, p.unexpected("'fun'")
	}
	fn := &ast.FunctionLiteral{Token: p.Token()}
	if !p.expect(token.PAREN_L) {
		return nil, p.unexpected("'('")
	}
	if !p.expect(token.PAREN_R) {
		seen := make(map[string]bool)
		for {
			if !p.expect(token.IDENT) {
				return nil, p.unexpected("identifier")
			}
			param := p.identifier()
			if seen[param.Name] {
				return nil, p.errorf("duplicate parameter '%s'", param.Name)
			}
			seen[param.Name] = true
			fn.Parameters = append(fn.Parameters, param)
			if p.expect(token.PAREN_R) {
				break
			}
			if !p.expect(token.COMMA) {
				return nil, p.unexpected("',' or ')'")
			}
		}
	}
	var err error
	fn.Body, err = p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// parseExpressionList parses comma separated expressions up to and including
// the closing token end.  The opening token must already be consumed.
func (p *Parser) parseExpressionList(end token.Type) ([]ast.Expression, error) {
	var exprs []ast.Expression
	if p.expect(end) {
		return exprs, nil
	}
	for {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if p.expect(end) {
			return exprs, nil
		}
		if !p.expect(token.COMMA) {
			return nil, p.unexpected("',' or '" + end.String() + "'")
		}
	}
}

func (p *Parser) identifier() *ast.Identifier {
	tok := p.Token()
	return &ast.Identifier{Token: tok, Name: tok.Text}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) Token() *token.Token {
	return p.src.Token
}

func (p *Parser) Peek() *token.Token {
	return p.src.Peek
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek.Type
}

func (p *Parser) expect(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

// unexpected returns an error describing the Peek token, which the parser
// could not accept in place of what.
func (p *Parser) unexpected(what string) error {
	tok := p.Peek()
	switch tok.Type {
	case token.ERROR:
		return langerr.New(langerr.Lexer, tok.Source, tok.Text)
	case token.EOF:
		return langerr.Errorf(langerr.Parser, tok.Source, "unexpected end of input, expected %s", what)
	}
	return langerr.Errorf(langerr.Parser, tok.Source, "unexpected token '%s', expected %s", tok, what)
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return langerr.Errorf(langerr.Parser, p.Token().Source, format, v...)
}
