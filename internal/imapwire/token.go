package imapwire

import (
	"fmt"
)

// TokenKind is the lexical class of a Token.
type TokenKind int

const (
	TokenSpace TokenKind = 1 + iota
	TokenNil
	TokenNumber
	TokenAtom
	TokenQuoted
	TokenLiteral
	TokenLParen
	TokenRParen
	TokenBackslash
	TokenStar
	TokenLBracket
	TokenRBracket
	TokenPlus
	TokenPercent
	TokenCRLF
	TokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenSpace:
		return "SP"
	case TokenNil:
		return "NIL"
	case TokenNumber:
		return "number"
	case TokenAtom:
		return "atom"
	case TokenQuoted:
		return "quoted"
	case TokenLiteral:
		return "literal"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenBackslash:
		return "'\\'"
	case TokenStar:
		return "'*'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenPlus:
		return "'+'"
	case TokenPercent:
		return "'%'"
	case TokenCRLF:
		return "CRLF"
	case TokenEOF:
		return "EOF"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical token.
//
// Raw holds the source text of the token. For quoted strings it is the text
// between the double quotes with escape sequences left untouched. For
// literals it is the "{n}" marker and the payload is in Literal.
type Token struct {
	Kind    TokenKind
	Pos     int
	Raw     string
	Num     int64  // TokenNumber value, TokenLiteral length
	Literal []byte // TokenLiteral payload
}

func (tok Token) String() string {
	switch tok.Kind {
	case TokenNumber, TokenAtom:
		return fmt.Sprintf("%v %q", tok.Kind, tok.Raw)
	case TokenQuoted:
		return fmt.Sprintf("quoted \"%v\"", tok.Raw)
	case TokenLiteral:
		return fmt.Sprintf("literal {%v}", tok.Num)
	default:
		return tok.Kind.String()
	}
}

// IsAtomLike reports whether the token can be part of a bare astring or
// flag, e.g. the "\", "Seen" pair of "\Seen" or the pieces of "[Gmail]/All".
func (tok Token) IsAtomLike() bool {
	switch tok.Kind {
	case TokenAtom, TokenNumber, TokenNil, TokenBackslash, TokenStar,
		TokenLBracket, TokenRBracket, TokenPlus, TokenPercent:
		return true
	default:
		return false
	}
}
