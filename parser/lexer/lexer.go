package lexer

import (
	"fmt"
	"io"

	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/internal/interntoken"
	"github.com/luthersystems/yascl/parser/token"
)

// UnterminatedString is the text of the ERROR token emitted when the input
// ends inside a string literal.
const UnterminatedString = "unterminated string"

var identTable = interntoken.NewTable()

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// term is the EOF or ERROR token that ended the scan.
	term *token.Token
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// Lex scans all of source and returns its tokens, the last of which is always
// an EOF token.  A malformed character stream produces a *langerr.Error of
// kind Lexer.
func Lex(file string, source string) ([]*token.Token, error) {
	lex := New(token.NewScanner(file, source))
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		switch tok.Type {
		case token.ERROR:
			return nil, langerr.New(langerr.Lexer, tok.Source, tok.Text)
		case token.EOF:
			return append(toks, tok), nil
		}
		toks = append(toks, tok)
	}
}

// NextToken returns the next token in the source.  Once an EOF or ERROR token
// has been returned every later call returns that same token.
func (lex *Lexer) NextToken() *token.Token {
	if lex.term != nil {
		return lex.term
	}
	lex.skipWhitespace()
	err := lex.readChar()
	if err != nil {
		return lex.emitError(err, true)
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case '[':
		return lex.charToken(token.BRACKET_L)
	case ']':
		return lex.charToken(token.BRACKET_R)
	case ',':
		return lex.charToken(token.COMMA)
	case ':':
		return lex.charToken(token.COLON)
	case '+':
		return lex.charToken(token.PLUS)
	case '-':
		return lex.charToken(token.MINUS)
	case '*':
		return lex.charToken(token.ASTERISK)
	case '/':
		return lex.charToken(token.SLASH)
	case '=':
		return lex.twoCharToken('=', token.EQ, token.ASSIGN)
	case '!':
		return lex.twoCharToken('=', token.NE, token.BANG)
	case '<':
		return lex.twoCharToken('=', token.LE, token.LT)
	case '>':
		return lex.twoCharToken('=', token.GE, token.GT)
	case '&':
		return lex.twoCharToken('&', token.AND, token.BIT_AND)
	case '|':
		return lex.twoCharToken('|', token.OR, token.BIT_OR)
	case '.':
		return lex.twoCharToken('.', token.RANGE, token.DOT)
	case '"':
		return lex.readString()
	default:
		if isDigit(lex.ch) {
			return lex.readNumber()
		}
		if isIdentStart(lex.ch) {
			return lex.readIdent()
		}
		return lex.errorf("unexpected character %q", lex.ch)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	if typ == token.EOF || typ == token.ERROR {
		lex.term = tok
	}
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, "unexpected end of input")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

// twoCharToken emits long when the next rune is second and short otherwise.
func (lex *Lexer) twoCharToken(second rune, long token.Type, short token.Type) *token.Token {
	if c, ok := lex.scanner.Peek(); ok && c == second {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
		return lex.scanner.EmitToken(long)
	}
	return lex.scanner.EmitToken(short)
}

// readString scans a string literal.  The quotes are not part of the token
// text and no escape sequences are processed.
func (lex *Lexer) readString() *token.Token {
	lex.scanner.Ignore()
	loc := lex.scanner.Loc()
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			if lex.scanner.EOF() {
				tok := lex.emit(token.ERROR, UnterminatedString)
				tok.Source = loc
				return tok
			}
			return lex.emitError(lex.scanner.ScanRune(), false)
		}
		if c == '"' {
			break
		}
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	tok := &token.Token{
		Type:   token.STRING,
		Text:   lex.scanner.Text(),
		Source: loc,
	}
	// consume the closing quote
	if err := lex.readChar(); err != nil {
		return lex.emitError(err, false)
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) readIdent() *token.Token {
	for isIdent(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	text := identTable.Get(lex.scanner.Text())
	return lex.emit(token.LookupIdent(text), text)
}

func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	// A '.' only belongs to the number when a digit follows it.  Otherwise it
	// starts the next token (e.g. the range operator in 0..3).
	if lex.peekRune() != '.' {
		return lex.scanner.EmitToken(token.INT)
	}
	c, ok := lex.scanner.Peek2()
	if !ok || !isDigit(c) {
		return lex.scanner.EmitToken(token.INT)
	}
	if err := lex.readChar(); err != nil {
		return lex.emitError(err, false)
	}
	for isDigit(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.emitError(err, false)
		}
	}
	// the returned string may not actually be a usable number (overflow), but
	// we can find that out at parse time -- not scan time.
	return lex.scanner.EmitToken(token.FLOAT)
}

func (lex *Lexer) skipWhitespace() {
	for isSpace(lex.peekRune()) {
		if lex.readChar() != nil {
			break
		}
	}
	lex.scanner.Ignore()
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isIdent(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
