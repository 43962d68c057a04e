/*
Package parser provides the yascl parser.

	program    := statement*
	statement  := 'let' IDENT '=' expr | 'mut' IDENT '=' expr | 'return' expr | expr
	expr       := IDENT '=' expr | binary
	binary     := prefix (binop prefix)*
	prefix     := ('!' | '-') prefix | postfix
	postfix    := primary ('(' exprs? ')' | '[' expr ']')*
	primary    := INT | FLOAT | STRING | 'true' | 'false' | IDENT | '(' expr ')'
	            | '[' exprs? ']' | '{' pairs '}' | '{' ':' '}' | '{' statement* '}'
	            | 'if' expr block ('else' (block | if))? | 'fun' '(' params? ')' block

Binary operators bind, loosest first: || && | & (== !=) (< <= > >=) .. (+ -)
(* /).  All binary operators are left associative.
*/
package parser

import (
	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/lang"
	"github.com/luthersystems/yascl/parser/lexer"
	"github.com/luthersystems/yascl/parser/rdparser"
)

// NewReader returns a lang.Reader that parses source streams.
func NewReader() lang.Reader {
	return rdparser.NewReader()
}

// Parse lexes and parses source, a program read from file.
func Parse(file string, source string) (*ast.Program, error) {
	toks, err := lexer.Lex(file, source)
	if err != nil {
		return nil, err
	}
	return rdparser.New(toks).ParseProgram()
}
