package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

// String returns the text of literal and identifier tokens and the canonical
// spelling of every other token type.
func (tok *Token) String() string {
	switch tok.Type {
	case IDENT, INT, FLOAT, STRING, ERROR:
		return tok.Text
	}
	return tok.Type.String()
}

type Type uint

// Type constants used for the yascl lexer/parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Identifiers & literals
	IDENT
	INT
	FLOAT
	STRING

	// Operators
	ASSIGN
	PLUS
	MINUS
	BANG
	ASTERISK
	SLASH
	LT
	GT
	LE
	GE
	EQ
	NE
	AND
	OR
	BIT_AND
	BIT_OR
	RANGE
	DOT

	// Delimiters
	COMMA
	COLON
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	BRACKET_L
	BRACKET_R

	// Keywords
	LET
	MUT
	FUN
	IF
	ELSE
	RETURN
	TRUE
	FALSE

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID:   "invalid",
	ERROR:     "error",
	EOF:       "EOF",
	IDENT:     "identifier",
	INT:       "integer",
	FLOAT:     "float",
	STRING:    "string",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	EQ:        "==",
	NE:        "!=",
	AND:       "&&",
	OR:        "||",
	BIT_AND:   "&",
	BIT_OR:    "|",
	RANGE:     "..",
	DOT:       ".",
	COMMA:     ",",
	COLON:     ":",
	PAREN_L:   "(",
	PAREN_R:   ")",
	BRACE_L:   "{",
	BRACE_R:   "}",
	BRACKET_L: "[",
	BRACKET_R: "]",
	LET:       "let",
	MUT:       "mut",
	FUN:       "fun",
	IF:        "if",
	ELSE:      "else",
	RETURN:    "return",
	TRUE:      "true",
	FALSE:     "false",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

var keywords = map[string]Type{
	"let":    LET,
	"mut":    MUT,
	"fun":    FUN,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
	"true":   TRUE,
	"false":  FALSE,
}

// LookupIdent returns the keyword type for ident, or IDENT when ident is not
// a keyword.
func LookupIdent(ident string) Type {
	if typ, ok := keywords[ident]; ok {
		return typ
	}
	return IDENT
}

type Location struct {
	File string
	Pos  int // byte offset
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number in runes (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
