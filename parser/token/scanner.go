package token

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from source text.  Scanner
// tracks line and column numbers so every emitted token carries a Location.
type Scanner struct {
	file string
	src  string

	start     int // byte offset of the first rune in the current token
	startLine int // line number at start
	startCol  int // column number at start

	pos  int // byte offset of c
	next int // byte offset of the rune following c
	line int // line number of the rune at next
	col  int // column number of the rune at next
	cLoc Location
	c    rune
}

// NewScanner initializes and returns a new Scanner over src.  The file name
// is only used to label token locations.
func NewScanner(file string, src string) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.src[s.start:s.next]
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// EOF returns true when every rune of the source text has been scanned.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.src)
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.  If Peek returns a false value the next call to
// s.ScanRune will return an error that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	return s.peekAt(s.next)
}

// Peek2 returns the rune following the one returned by Peek.
func (s *Scanner) Peek2() (rune, bool) {
	_, n, ok := s.decode(s.next)
	if !ok {
		return 0, false
	}
	return s.peekAt(s.next + n)
}

func (s *Scanner) peekAt(offset int) (rune, bool) {
	c, _, ok := s.decode(offset)
	return c, ok
}

func (s *Scanner) decode(offset int) (rune, int, bool) {
	if offset >= len(s.src) {
		return 0, 0, false
	}
	c, n := utf8.DecodeRuneInString(s.src[offset:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, n, false
	}
	return c, n, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  ScanRune returns io.EOF when the source is exhausted.
func (s *Scanner) ScanRune() error {
	if s.EOF() {
		return io.EOF
	}
	c, n := utf8.DecodeRuneInString(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %#x", s.src[s.next])
	}
	s.cLoc = Location{File: s.file, Pos: s.next, Line: s.line, Col: s.col}
	s.c = c
	s.pos = s.next
	s.next += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position, the last
// position of the current token.
func (s *Scanner) Loc() *Location {
	loc := s.cLoc
	return &loc
}
