package imapwire

import (
	"errors"
	"fmt"
	"strconv"
)

// SyntaxError is returned when no lexical rule matches the input.
type SyntaxError struct {
	Pos      int
	Expected string
	Near     string
}

func (err *SyntaxError) Error() string {
	if err.Near == "" {
		return fmt.Sprintf("imapwire: at offset %v: expected %v", err.Pos, err.Expected)
	}
	return fmt.Sprintf("imapwire: at offset %v: expected %v, got %q", err.Pos, err.Expected, err.Near)
}

// Lexer splits an already-buffered server response into tokens.
//
// The lexer keeps at most one token of lookahead. It performs no I/O.
type Lexer struct {
	src     []byte
	pos     int
	grammar Grammar

	peeked  bool
	peekTok Token
	peekErr error
}

// NewLexer creates a lexer reading src with the rules of g.
//
// A nil grammar is equivalent to BaseGrammar.
func NewLexer(src []byte, g Grammar) *Lexer {
	if g == nil {
		g = BaseGrammar()
	}
	return &Lexer{src: src, grammar: g}
}

// Pos returns the offset of the next unread byte.
func (lex *Lexer) Pos() int {
	if lex.peeked {
		return lex.peekTok.Pos
	}
	return lex.pos
}

// Text returns the source text between two offsets.
func (lex *Lexer) Text(start, end int) string {
	return string(lex.src[start:end])
}

// Peek returns the next token without consuming it.
func (lex *Lexer) Peek() (Token, error) {
	if !lex.peeked {
		lex.peekTok, lex.peekErr = lex.lex()
		lex.peeked = true
	}
	return lex.peekTok, lex.peekErr
}

// Next consumes and returns the next token. Once the input is exhausted,
// Next keeps returning TokenEOF.
func (lex *Lexer) Next() (Token, error) {
	tok, err := lex.Peek()
	if err == nil {
		lex.peeked = false
	}
	return tok, err
}

func (lex *Lexer) lex() (Token, error) {
	start := lex.pos
	for _, rule := range lex.grammar {
		n, ok := rule.Match(lex.src, start)
		if !ok {
			continue
		}
		tok, err := makeToken(rule.Kind, lex.src, start, n)
		if err != nil {
			return Token{}, err
		}
		lex.pos = start + n
		return tok, nil
	}
	return Token{}, &SyntaxError{
		Pos:      start,
		Expected: expectedAt(lex.src, start),
		Near:     near(lex.src, start),
	}
}

func makeToken(kind TokenKind, src []byte, pos, n int) (Token, error) {
	tok := Token{Kind: kind, Pos: pos, Raw: string(src[pos : pos+n])}
	switch kind {
	case TokenNumber:
		v, err := parseNumber(tok.Raw)
		if err != nil {
			return Token{}, &SyntaxError{Pos: pos, Expected: "64-bit number", Near: tok.Raw}
		}
		tok.Num = v
	case TokenQuoted:
		tok.Raw = tok.Raw[1 : len(tok.Raw)-1]
	case TokenLiteral:
		hdr, size, _ := literalHeader(src, pos)
		tok.Raw = string(src[pos : pos+hdr-2])
		tok.Num = size
		tok.Literal = src[pos+hdr : pos+n]
	}
	return tok, nil
}

// parseNumber parses a decimal number. Unsigned values which don't fit in an
// int64 but fit in an uint64 keep their 64-bit pattern.
func parseNumber(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, strconv.ErrRange) || s[0] == '-' {
		return 0, err
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

func expectedAt(src []byte, pos int) string {
	if pos >= len(src) {
		return "token"
	}
	switch src[pos] {
	case '"':
		return "closing '\"'"
	case '{':
		return "literal"
	case '\r':
		return "CRLF"
	default:
		return "token"
	}
}

func near(src []byte, pos int) string {
	const max = 16
	end := pos + max
	if end > len(src) {
		end = len(src)
	}
	return string(src[pos:end])
}
