package imapparser

import (
	"errors"
	"strings"

	"github.com/gmimap/go-gmimap"
	"github.com/gmimap/go-gmimap/internal/imapwire"
)

// Decoder reads the tokens of a single FETCH response. AttrParser functions
// use it to consume the value of an attribute.
//
// All errors returned by a Decoder are *gmimap.ParseError values.
type Decoder struct {
	lex     *imapwire.Lexer
	options *Options
	name    string // attribute being parsed
	depth   int    // open lists
}

func newDecoder(b []byte, g imapwire.Grammar, options *Options) *Decoder {
	return &Decoder{lex: imapwire.NewLexer(b, g), options: options}
}

// Pos returns the offset of the next token.
func (dec *Decoder) Pos() int {
	return dec.lex.Pos()
}

func (dec *Decoder) malformed(err error) error {
	parseErr := &gmimap.ParseError{
		Kind: gmimap.ErrMalformedInput,
		Pos:  dec.lex.Pos(),
		Name: dec.name,
		Err:  err,
	}
	var syntaxErr *imapwire.SyntaxError
	if errors.As(err, &syntaxErr) {
		parseErr.Pos = syntaxErr.Pos
	}
	return parseErr
}

// unexpected reports a token of the wrong kind. Running out of input inside
// a list means the list wasn't closed.
func (dec *Decoder) unexpected(tok imapwire.Token, expected string) *gmimap.ParseError {
	kind := gmimap.ErrUnexpectedToken
	if dec.depth > 0 && (tok.Kind == imapwire.TokenEOF || tok.Kind == imapwire.TokenCRLF) {
		kind = gmimap.ErrExpectedCloseList
	}
	return &gmimap.ParseError{
		Kind:     kind,
		Pos:      tok.Pos,
		Name:     dec.name,
		Expected: expected,
		Actual:   tok.String(),
	}
}

// mismatch reports a token which isn't of the wanted kind.
func (dec *Decoder) mismatch(tok imapwire.Token, want imapwire.TokenKind) *gmimap.ParseError {
	err := dec.unexpected(tok, want.String())
	switch want {
	case imapwire.TokenLParen:
		err.Kind = gmimap.ErrExpectedOpenList
	case imapwire.TokenRParen:
		err.Kind = gmimap.ErrExpectedCloseList
	}
	return err
}

func (dec *Decoder) invalid(pos int, err error) error {
	return &gmimap.ParseError{
		Kind: gmimap.ErrInvalidValue,
		Pos:  pos,
		Name: dec.name,
		Err:  err,
	}
}

func (dec *Decoder) peek() (imapwire.Token, error) {
	tok, err := dec.lex.Peek()
	if err != nil {
		return tok, dec.malformed(err)
	}
	return tok, nil
}

func (dec *Decoder) next() (imapwire.Token, error) {
	tok, err := dec.lex.Next()
	if err != nil {
		return tok, dec.malformed(err)
	}
	return tok, nil
}

func (dec *Decoder) accept(kind imapwire.TokenKind) (bool, error) {
	tok, err := dec.peek()
	if err != nil || tok.Kind != kind {
		return false, err
	}
	_, err = dec.next()
	return err == nil, err
}

func (dec *Decoder) expect(kind imapwire.TokenKind) (imapwire.Token, error) {
	tok, err := dec.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, dec.mismatch(tok, kind)
	}
	switch kind {
	case imapwire.TokenLParen:
		dec.depth++
	case imapwire.TokenRParen:
		dec.depth--
	}
	return tok, nil
}

func (dec *Decoder) expectOpen() error {
	_, err := dec.expect(imapwire.TokenLParen)
	return err
}

func (dec *Decoder) expectClose() error {
	_, err := dec.expect(imapwire.TokenRParen)
	return err
}

func (dec *Decoder) is(kind imapwire.TokenKind) bool {
	tok, err := dec.peek()
	return err == nil && tok.Kind == kind
}

// IsNil reports whether the next token is NIL.
func (dec *Decoder) IsNil() bool {
	return dec.is(imapwire.TokenNil)
}

// IsList reports whether the next token opens a list.
func (dec *Decoder) IsList() bool {
	return dec.is(imapwire.TokenLParen)
}

// IsLBracket reports whether the next token is '['.
func (dec *Decoder) IsLBracket() bool {
	return dec.is(imapwire.TokenLBracket)
}

// IsSP reports whether the next token is a space.
func (dec *Decoder) IsSP() bool {
	return dec.is(imapwire.TokenSpace)
}

// SkipSpaces consumes spaces, if any.
func (dec *Decoder) SkipSpaces() error {
	_, err := dec.accept(imapwire.TokenSpace)
	return err
}

// ExpectSP consumes one or more spaces.
func (dec *Decoder) ExpectSP() error {
	_, err := dec.expect(imapwire.TokenSpace)
	return err
}

// Number reads a number.
func (dec *Decoder) Number() (int64, error) {
	tok, err := dec.expect(imapwire.TokenNumber)
	return tok.Num, err
}

// Quoted reads a quoted string and unescapes it.
func (dec *Decoder) Quoted() (string, error) {
	tok, err := dec.expect(imapwire.TokenQuoted)
	if err != nil {
		return "", err
	}
	return gmimap.Unescape(tok.Raw), nil
}

// String reads a quoted string or a literal.
func (dec *Decoder) String() (string, error) {
	tok, err := dec.next()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case imapwire.TokenQuoted:
		return gmimap.Unescape(tok.Raw), nil
	case imapwire.TokenLiteral:
		return string(tok.Literal), nil
	default:
		return "", dec.unexpected(tok, "string")
	}
}

// NString reads NIL, a quoted string or a literal. isNil is true for NIL.
func (dec *Decoder) NString() (s string, isNil bool, err error) {
	ok, err := dec.accept(imapwire.TokenNil)
	if err != nil || ok {
		return "", ok, err
	}
	s, err = dec.String()
	return s, false, err
}

// Atom reads a run of adjacent atom-like tokens and returns their text
// verbatim, e.g. "\Seen", "$Label" or "[Gmail]/Sent".
func (dec *Decoder) Atom() (string, error) {
	return dec.atom(false)
}

// Flag reads a flag. It is like Atom, but a backslash starts a new flag, so
// "\Seen\Flagged" is read as two flags.
func (dec *Decoder) Flag() (gmimap.Flag, error) {
	s, err := dec.atom(true)
	return gmimap.Flag(s), err
}

func (dec *Decoder) atom(splitBackslash bool) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.peek()
		if err != nil {
			return "", err
		}
		if splitBackslash && sb.Len() > 0 && tok.Kind == imapwire.TokenBackslash {
			return sb.String(), nil
		}
		if !tok.IsAtomLike() {
			if sb.Len() == 0 {
				return "", dec.unexpected(tok, "atom")
			}
			return sb.String(), nil
		}
		dec.lex.Next()
		sb.WriteString(tok.Raw)
	}
}

// AString reads an atom, a quoted string or a literal.
func (dec *Decoder) AString() (string, error) {
	tok, err := dec.peek()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case imapwire.TokenQuoted, imapwire.TokenLiteral:
		return dec.String()
	default:
		return dec.Atom()
	}
}

// ExpectList reads a parenthesized list, calling f for each element. Spaces
// between elements are skipped.
func (dec *Decoder) ExpectList(f func() error) error {
	if err := dec.expectOpen(); err != nil {
		return err
	}
	for {
		if err := dec.SkipSpaces(); err != nil {
			return err
		}

		tok, err := dec.peek()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case imapwire.TokenRParen:
			return dec.expectClose()
		case imapwire.TokenEOF, imapwire.TokenCRLF:
			return dec.unexpected(tok, "')'")
		}

		if err := f(); err != nil {
			return err
		}
		if dec.Pos() == tok.Pos {
			return dec.unexpected(tok, "list element")
		}
	}
}

// ExpectNList reads NIL or a parenthesized list. isNil is true for NIL.
func (dec *Decoder) ExpectNList(f func() error) (isNil bool, err error) {
	if ok, err := dec.accept(imapwire.TokenNil); err != nil || ok {
		return ok, err
	}
	return false, dec.ExpectList(f)
}
