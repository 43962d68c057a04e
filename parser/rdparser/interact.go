package rdparser

import (
	"strings"
	"sync"

	"github.com/luthersystems/yascl/ast"
	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/lexer"
	"github.com/luthersystems/yascl/parser/token"
)

// Interactive implements a parser that accumulates lines of terminal input
// until they form a complete unit.  Input is incomplete while it has unclosed
// brackets, ends inside a string literal, or ends with a token that requires
// an operand.
type Interactive struct {
	File string
	PS1  string
	PS2  string
	buf  []string
	mut  sync.RWMutex
}

// NewInteractive initializes and returns a new Interactive parser.  Source
// locations in parsed programs are reported against file.
func NewInteractive(file string) *Interactive {
	return &Interactive{
		File: file,
		PS1:  "|> ",
		PS2:  "   ",
	}
}

// Prompt returns a simple prompt that can be used by a REPL.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return p.PS2
	}
	return p.PS1
}

// IsParsing returns true if p is holding incomplete input.  IsParsing can be
// called at any time, potentially by concurrent goroutines or when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		// definitely not parsing right now
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return len(p.buf) > 0
}

// Reset discards any buffered input.
func (p *Interactive) Reset() {
	p.mut.Lock()
	p.buf = nil
	p.mut.Unlock()
}

// ParseLine adds line to the buffered input.  When the buffered input is
// complete it is parsed and the buffer is cleared.  ParseLine returns a nil
// program and a nil error when more input is needed.  If a lexical or parse
// error is encountered the buffered input is discarded so corrected source can
// be re-read.
func (p *Interactive) ParseLine(line string) (*ast.Program, error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf = append(p.buf, line)
	src := strings.Join(p.buf, "\n")
	if strings.TrimSpace(src) == "" {
		p.buf = nil
		return &ast.Program{}, nil
	}
	toks, complete, err := scanUnit(p.File, src)
	if err != nil {
		p.buf = nil
		return nil, err
	}
	if !complete {
		return nil, nil
	}
	p.buf = nil
	return New(toks).ParseProgram()
}

// scanUnit lexes src and reports whether it is a complete unit of input.
func scanUnit(file string, src string) ([]*token.Token, bool, error) {
	lex := lexer.New(token.NewScanner(file, src))
	var toks []*token.Token
	depth := 0
	for {
		tok := lex.NextToken()
		switch tok.Type {
		case token.ERROR:
			if tok.Text == lexer.UnterminatedString {
				return nil, false, nil
			}
			return nil, false, langerr.New(langerr.Lexer, tok.Source, tok.Text)
		case token.EOF:
			complete := depth <= 0
			if len(toks) > 0 && needsOperand(toks[len(toks)-1].Type) {
				complete = false
			}
			return append(toks, tok), complete, nil
		case token.PAREN_L, token.BRACE_L, token.BRACKET_L:
			depth++
		case token.PAREN_R, token.BRACE_R, token.BRACKET_R:
			depth--
		}
		toks = append(toks, tok)
	}
}

func needsOperand(typ token.Type) bool {
	if ast.InfixPrecedence(typ) != ast.LowestPrecedence {
		return true
	}
	switch typ {
	case token.ASSIGN, token.BANG, token.COMMA, token.COLON,
		token.LET, token.MUT, token.FUN, token.IF, token.ELSE, token.RETURN:
		return true
	}
	return false
}
