package imapwire

// Rule is a lexical rule. Match reports the length of the token starting at
// src[pos], or ok == false if the rule doesn't match there.
type Rule struct {
	Kind  TokenKind
	Match func(src []byte, pos int) (n int, ok bool)
}

// Grammar is an ordered set of lexical rules. The first rule which matches
// wins, so order matters: NIL and numbers must be tried before atoms.
type Grammar []Rule

// BaseGrammar returns the lexical rules of the base protocol. Numbers are
// unsigned.
func BaseGrammar() Grammar {
	return Grammar{
		{TokenSpace, matchSpace},
		{TokenNil, matchNil},
		{TokenNumber, matchUnsigned},
		{TokenAtom, matchAtom},
		{TokenQuoted, matchQuoted},
		{TokenLParen, matchByte('(')},
		{TokenRParen, matchByte(')')},
		{TokenBackslash, matchByte('\\')},
		{TokenStar, matchByte('*')},
		{TokenLBracket, matchByte('[')},
		{TokenRBracket, matchByte(']')},
		{TokenLiteral, matchLiteral},
		{TokenPlus, matchByte('+')},
		{TokenPercent, matchByte('%')},
		{TokenCRLF, matchCRLF},
		{TokenEOF, matchEOF},
	}
}

// SignedNumberRule matches numbers with an optional leading minus sign.
//
// Gmail sends X-GM-MSGID and X-GM-THRID values which overflowed into the
// negative range. With the unsigned rule these lex as atoms and the whole
// response becomes unparsable.
var SignedNumberRule = Rule{TokenNumber, matchSigned}

// With returns a copy of the grammar with the rule of the same kind replaced
// by r. If the grammar has no rule of that kind, r is appended.
func (g Grammar) With(r Rule) Grammar {
	out := make(Grammar, len(g), len(g)+1)
	copy(out, g)
	for i := range out {
		if out[i].Kind == r.Kind {
			out[i] = r
			return out
		}
	}
	return append(out, r)
}

// IsDelim reports whether b ends a NIL, number or atom token.
func IsDelim(b byte) bool {
	switch b {
	case '(', ')', '{', ' ', '%', '*', '"', '\\', '[', ']', '+', 0x7f:
		return true
	default:
		return b < 0x20 || b >= 0x80
	}
}

// followedByDelim reports whether the token ending at src[end] is followed
// by a delimiter. The end of input counts as one.
func followedByDelim(src []byte, end int) bool {
	return end >= len(src) || IsDelim(src[end])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func matchSpace(src []byte, pos int) (int, bool) {
	n := 0
	for pos+n < len(src) && src[pos+n] == ' ' {
		n++
	}
	return n, n > 0
}

func matchNil(src []byte, pos int) (int, bool) {
	if len(src)-pos < 3 {
		return 0, false
	}
	s := src[pos : pos+3]
	// NIL is case-insensitive, like all protocol keywords
	if (s[0]|0x20) != 'n' || (s[1]|0x20) != 'i' || (s[2]|0x20) != 'l' {
		return 0, false
	}
	return 3, followedByDelim(src, pos+3)
}

func matchDigits(src []byte, pos int) int {
	n := 0
	for pos+n < len(src) && isDigit(src[pos+n]) {
		n++
	}
	return n
}

func matchUnsigned(src []byte, pos int) (int, bool) {
	n := matchDigits(src, pos)
	return n, n > 0 && followedByDelim(src, pos+n)
}

func matchSigned(src []byte, pos int) (int, bool) {
	sign := 0
	if pos < len(src) && src[pos] == '-' {
		sign = 1
	}
	n := matchDigits(src, pos+sign)
	return sign + n, n > 0 && followedByDelim(src, pos+sign+n)
}

func matchAtom(src []byte, pos int) (int, bool) {
	n := 0
	for pos+n < len(src) && !IsDelim(src[pos+n]) {
		n++
	}
	return n, n > 0
}

func matchQuoted(src []byte, pos int) (int, bool) {
	if pos >= len(src) || src[pos] != '"' {
		return 0, false
	}
	for i := pos + 1; i < len(src); i++ {
		switch src[i] {
		case '"':
			return i + 1 - pos, true
		case 0, '\r', '\n':
			return 0, false
		case '\\':
			if i+1 >= len(src) || (src[i+1] != '"' && src[i+1] != '\\') {
				return 0, false
			}
			i++
		}
	}
	return 0, false
}

func matchByte(want byte) func(src []byte, pos int) (int, bool) {
	return func(src []byte, pos int) (int, bool) {
		return 1, pos < len(src) && src[pos] == want
	}
}

// literalHeader matches "{n}\r\n" and reports the header length and n.
func literalHeader(src []byte, pos int) (hdr int, size int64, ok bool) {
	if pos >= len(src) || src[pos] != '{' {
		return 0, 0, false
	}
	digits := matchDigits(src, pos+1)
	if digits == 0 || digits > 18 {
		return 0, 0, false
	}
	end := pos + 1 + digits
	if len(src)-end < 3 || src[end] != '}' || src[end+1] != '\r' || src[end+2] != '\n' {
		return 0, 0, false
	}
	for _, b := range src[pos+1 : end] {
		size = size*10 + int64(b-'0')
	}
	return end + 3 - pos, size, true
}

func matchLiteral(src []byte, pos int) (int, bool) {
	hdr, size, ok := literalHeader(src, pos)
	if !ok || int64(len(src)-pos-hdr) < size {
		return 0, false
	}
	return hdr + int(size), true
}

func matchCRLF(src []byte, pos int) (int, bool) {
	return 2, len(src)-pos >= 2 && src[pos] == '\r' && src[pos+1] == '\n'
}

func matchEOF(src []byte, pos int) (int, bool) {
	return 0, pos >= len(src)
}
