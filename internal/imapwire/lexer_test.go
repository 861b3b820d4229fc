package imapwire

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, s string, g Grammar) []Token {
	t.Helper()
	lex := NewLexer([]byte(s), g)
	var toks []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err, "lexing %q", s)
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func kinds(toks []Token) []TokenKind {
	l := make([]TokenKind, len(toks))
	for i, tok := range toks {
		l[i] = tok.Kind
	}
	return l
}

func TestLexer_kinds(t *testing.T) {
	tests := []struct {
		in   string
		want []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"   ", []TokenKind{TokenSpace, TokenEOF}},
		{"NIL", []TokenKind{TokenNil, TokenEOF}},
		{"nil)", []TokenKind{TokenNil, TokenRParen, TokenEOF}},
		{"NILS", []TokenKind{TokenAtom, TokenEOF}},
		{"42", []TokenKind{TokenNumber, TokenEOF}},
		{"42abc", []TokenKind{TokenAtom, TokenEOF}},
		{"RFC822.SIZE 42", []TokenKind{TokenAtom, TokenSpace, TokenNumber, TokenEOF}},
		{`(\Seen)`, []TokenKind{TokenLParen, TokenBackslash, TokenAtom, TokenRParen, TokenEOF}},
		{`\*`, []TokenKind{TokenBackslash, TokenStar, TokenEOF}},
		{"[Gmail]/Sent", []TokenKind{TokenLBracket, TokenAtom, TokenRBracket, TokenAtom, TokenEOF}},
		{"+%", []TokenKind{TokenPlus, TokenPercent, TokenEOF}},
		{`"a b"`, []TokenKind{TokenQuoted, TokenEOF}},
		{"{3}\r\nabc", []TokenKind{TokenLiteral, TokenEOF}},
		{"* 2 FETCH ()\r\n", []TokenKind{
			TokenStar, TokenSpace, TokenNumber, TokenSpace, TokenAtom, TokenSpace,
			TokenLParen, TokenRParen, TokenCRLF, TokenEOF,
		}},
	}
	for _, tc := range tests {
		t.Run(strconv.Quote(tc.in), func(t *testing.T) {
			assert.Equal(t, tc.want, kinds(lexAll(t, tc.in, nil)))
		})
	}
}

func TestLexer_number(t *testing.T) {
	for _, n := range []int64{0, 1, 42, 1427748806289683814, math.MaxInt64} {
		s := strconv.FormatInt(n, 10)

		toks := lexAll(t, s, nil)
		require.Equal(t, TokenNumber, toks[0].Kind)
		assert.Equal(t, n, toks[0].Num)

		toks = lexAll(t, "-"+s, BaseGrammar().With(SignedNumberRule))
		require.Equal(t, TokenNumber, toks[0].Kind)
		assert.Equal(t, -n, toks[0].Num)
	}
}

func TestLexer_negativeWithBaseGrammar(t *testing.T) {
	toks := lexAll(t, "-1427748806289683814)", nil)
	require.Equal(t, TokenAtom, toks[0].Kind)
	assert.Equal(t, "-1427748806289683814", toks[0].Raw)
	assert.Equal(t, TokenRParen, toks[1].Kind)
}

func TestLexer_uint64(t *testing.T) {
	toks := lexAll(t, "18446744073709551615", nil)
	require.Equal(t, TokenNumber, toks[0].Kind)
	assert.Equal(t, int64(-1), toks[0].Num)

	_, err := NewLexer([]byte("18446744073709551616"), nil).Next()
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 0, syntaxErr.Pos)
}

func TestLexer_quoted(t *testing.T) {
	toks := lexAll(t, `"Mailing \"List\" \\o/"`, nil)
	require.Equal(t, TokenQuoted, toks[0].Kind)
	assert.Equal(t, `Mailing \"List\" \\o/`, toks[0].Raw)

	for _, s := range []string{`"abc`, "\"a\r\nb\"", `"a\qb"`} {
		_, err := NewLexer([]byte(s), nil).Next()
		var syntaxErr *SyntaxError
		assert.ErrorAs(t, err, &syntaxErr, "lexing %q", s)
	}
}

func TestLexer_literal(t *testing.T) {
	toks := lexAll(t, "{8}\r\n(a \"b)\r\n X", nil)
	require.Equal(t, TokenLiteral, toks[0].Kind)
	assert.Equal(t, int64(8), toks[0].Num)
	assert.Equal(t, "(a \"b)\r\n", string(toks[0].Literal))
	assert.Equal(t, "{8}", toks[0].Raw)
	assert.Equal(t, []TokenKind{TokenLiteral, TokenSpace, TokenAtom, TokenEOF}, kinds(toks))

	_, err := NewLexer([]byte("{10}\r\nshort"), nil).Next()
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "literal", syntaxErr.Expected)
}

func TestLexer_peek(t *testing.T) {
	lex := NewLexer([]byte("A B"), nil)
	tok, err := lex.Peek()
	require.NoError(t, err)
	assert.Equal(t, "A", tok.Raw)
	assert.Equal(t, 0, lex.Pos())

	tok, err = lex.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", tok.Raw)
	assert.Equal(t, 1, lex.Pos())

	lex.Next()
	tok, _ = lex.Next()
	assert.Equal(t, "B", tok.Raw)
	tok, _ = lex.Next()
	assert.Equal(t, TokenEOF, tok.Kind)
	tok, _ = lex.Next()
	assert.Equal(t, TokenEOF, tok.Kind)
}

func TestLexer_malformed(t *testing.T) {
	_, err := NewLexer([]byte("\r"), nil).Next()
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "CRLF", syntaxErr.Expected)
	assert.Contains(t, err.Error(), "offset 0")
}

func TestGrammar_With(t *testing.T) {
	base := BaseGrammar()
	signed := base.With(SignedNumberRule)
	require.Len(t, signed, len(base))

	n, ok := base[2].Match([]byte("-5"), 0)
	assert.False(t, ok)
	n, ok = signed[2].Match([]byte("-5"), 0)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}
