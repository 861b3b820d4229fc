package gmimap

import (
	"strings"
)

// unescapes maps the byte following a backslash to the byte it stands for.
var unescapes = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'f':  '\f',
	'v':  '\v',
	'0':  0,
	'a':  '\a',
}

// Unescape resolves the backslash escape sequences of the raw contents of a
// quoted string.
//
// Unknown escape sequences are kept as-is, backslash included. A trailing
// lone backslash is dropped. Unescape never fails.
func Unescape(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	escaped := false
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if escaped {
			if sub, ok := unescapes[ch]; ok {
				sb.WriteByte(sub)
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(ch)
			}
			escaped = false
		} else if ch == '\\' {
			escaped = true
		} else {
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

var escapes = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'\n': 'n',
	'\t': 't',
	'\r': 'r',
	'\f': 'f',
	'\v': 'v',
	0:    '0',
	'\a': 'a',
}

// Escape is the inverse of Unescape: Unescape(Escape(s)) == s.
func Escape(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if esc, ok := escapes[ch]; ok {
			sb.WriteByte('\\')
			sb.WriteByte(esc)
		} else {
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}
