package rdparser

import (
	"github.com/luthersystems/yascl/parser/token"
)

// TokenSource feeds a Parser from a lexed token sequence.  Token is the most
// recently consumed token and Peek is the next token to be consumed.
type TokenSource struct {
	toks  []*token.Token
	pos   int
	Token *token.Token
	Peek  *token.Token
}

// NewTokenSource initializes and returns a new TokenSource over toks.  If
// toks is not terminated by an EOF token the source behaves as if it were.
func NewTokenSource(toks []*token.Token) *TokenSource {
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		var loc *token.Location
		if len(toks) > 0 {
			loc = toks[len(toks)-1].Source
		}
		terminated := make([]*token.Token, len(toks), len(toks)+1)
		copy(terminated, toks)
		toks = append(terminated, &token.Token{Type: token.EOF, Source: loc})
	}
	s := &TokenSource{
		toks: toks,
	}
	s.scan()
	return s
}

func (s *TokenSource) Accept(fn func(*token.Token) bool) bool {
	if fn(s.Peek) {
		s.scan()
		return true
	}
	return false
}

func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek.Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Lookahead returns the token n positions beyond Peek.  Lookahead(0) is
// Peek.  Looking beyond the end of the source returns the EOF token.
func (s *TokenSource) Lookahead(n int) *token.Token {
	i := s.pos - 1 + n
	if i >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[i]
}

func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek
		return false
	}
	s.scan()
	return true
}

func (s *TokenSource) IsEOF() bool {
	return s.Peek.Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek
	if s.pos < len(s.toks) {
		s.Peek = s.toks[s.pos]
		s.pos++
	}
}
