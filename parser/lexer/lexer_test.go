package lexer

import (
	"testing"

	"github.com/luthersystems/yascl/langerr"
	"github.com/luthersystems/yascl/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lexResult struct {
	typ  token.Type
	text string
}

func TestLexer(t *testing.T) {
	for i, test := range []struct {
		source string
		tokens []lexResult
	}{
		{"", nil},
		{" \t\r\n", nil},
		{"let x = 5", []lexResult{
			{token.LET, "let"},
			{token.IDENT, "x"},
			{token.ASSIGN, "="},
			{token.INT, "5"},
		}},
		{"mut _a1 = 12.5", []lexResult{
			{token.MUT, "mut"},
			{token.IDENT, "_a1"},
			{token.ASSIGN, "="},
			{token.FLOAT, "12.5"},
		}},
		{"== != <= >= && || .. = ! < > & | .", []lexResult{
			{token.EQ, "=="},
			{token.NE, "!="},
			{token.LE, "<="},
			{token.GE, ">="},
			{token.AND, "&&"},
			{token.OR, "||"},
			{token.RANGE, ".."},
			{token.ASSIGN, "="},
			{token.BANG, "!"},
			{token.LT, "<"},
			{token.GT, ">"},
			{token.BIT_AND, "&"},
			{token.BIT_OR, "|"},
			{token.DOT, "."},
		}},
		{"0..3", []lexResult{
			{token.INT, "0"},
			{token.RANGE, ".."},
			{token.INT, "3"},
		}},
		{"1.", []lexResult{
			{token.INT, "1"},
			{token.DOT, "."},
		}},
		{"a[1](2)", []lexResult{
			{token.IDENT, "a"},
			{token.BRACKET_L, "["},
			{token.INT, "1"},
			{token.BRACKET_R, "]"},
			{token.PAREN_L, "("},
			{token.INT, "2"},
			{token.PAREN_R, ")"},
		}},
		{`{"k": "v w", "": x}`, []lexResult{
			{token.BRACE_L, "{"},
			{token.STRING, "k"},
			{token.COLON, ":"},
			{token.STRING, "v w"},
			{token.COMMA, ","},
			{token.STRING, ""},
			{token.COLON, ":"},
			{token.IDENT, "x"},
			{token.BRACE_R, "}"},
		}},
		{`"a\n"`, []lexResult{
			{token.STRING, `a\n`},
		}},
		{"fun if else return true false lets", []lexResult{
			{token.FUN, "fun"},
			{token.IF, "if"},
			{token.ELSE, "else"},
			{token.RETURN, "return"},
			{token.TRUE, "true"},
			{token.FALSE, "false"},
			{token.IDENT, "lets"},
		}},
		{"-1 * 2 / 3 + 4", []lexResult{
			{token.MINUS, "-"},
			{token.INT, "1"},
			{token.ASTERISK, "*"},
			{token.INT, "2"},
			{token.SLASH, "/"},
			{token.INT, "3"},
			{token.PLUS, "+"},
			{token.INT, "4"},
		}},
	} {
		toks, err := Lex("test", test.source)
		require.NoError(t, err, "test %d", i)
		require.NotEmpty(t, toks, "test %d", i)
		eof := toks[len(toks)-1]
		assert.Equal(t, token.EOF, eof.Type, "test %d", i)
		toks = toks[:len(toks)-1]
		if assert.Len(t, toks, len(test.tokens), "test %d", i) {
			for j, tok := range toks {
				assert.Equal(t, test.tokens[j].typ, tok.Type, "test %d token %d", i, j)
				assert.Equal(t, test.tokens[j].text, tok.Text, "test %d token %d", i, j)
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	for i, test := range []struct {
		source string
		msg    string
	}{
		{`let s = "abc`, `LexerError: test:1:9: unterminated string`},
		{"1 $ 2", `LexerError: test:1:3: unexpected character '$'`},
		{"x\n  #", `LexerError: test:2:3: unexpected character '#'`},
		{"\"ok\" ;", `LexerError: test:1:6: unexpected character ';'`},
		{"a \xff", `LexerError: test:1:3: invalid utf-8 sequence in source text starting with byte 0xff`},
	} {
		_, err := Lex("test", test.source)
		if assert.Error(t, err, "test %d", i) {
			assert.True(t, langerr.Is(err, langerr.Lexer), "test %d", i)
			assert.Equal(t, test.msg, err.Error(), "test %d", i)
		}
	}
}

func TestLocations(t *testing.T) {
	toks, err := Lex("test", "let x =\n  \"é\" + y")
	require.NoError(t, err)
	require.Len(t, toks, 7)
	locs := []string{
		"test:1:1",
		"test:1:5",
		"test:1:7",
		"test:2:3",
		"test:2:7",
		"test:2:9",
		"test:2:10",
	}
	for i, tok := range toks {
		assert.Equal(t, locs[i], tok.Source.String(), "token %d", i)
	}
}

func TestTerminalToken(t *testing.T) {
	lex := New(token.NewScanner("test", "x"))
	assert.Equal(t, token.IDENT, lex.NextToken().Type)
	eof := lex.NextToken()
	assert.Equal(t, token.EOF, eof.Type)
	for i := 0; i < 3; i++ {
		assert.Same(t, eof, lex.NextToken())
	}

	lex = New(token.NewScanner("test", "?x"))
	bad := lex.NextToken()
	assert.Equal(t, token.ERROR, bad.Type)
	assert.Same(t, bad, lex.NextToken())
}

func TestInterning(t *testing.T) {
	toks, err := Lex("test", "abc abc")
	require.NoError(t, err)
	assert.Equal(t, toks[0].Text, toks[1].Text)
}
