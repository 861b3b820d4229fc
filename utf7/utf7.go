// Package utf7 implements the modified UTF-7 encoding defined in RFC 3501
// section 5.1.3.
//
// Gmail uses it for mailbox names and for the label names it returns in
// X-GM-LABELS.
package utf7

import (
	"bytes"
	"encoding/base64"
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	min = 0x20 // Minimum self-representing UTF-7 value
	max = 0x7E // Maximum self-representing UTF-7 value

	repl = '\uFFFD' // Unicode replacement code point
)

var b64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+,").
	WithPadding(base64.NoPadding).
	Strict()

// ErrInvalidUTF7 is returned when decoding malformed modified UTF-7.
var ErrInvalidUTF7 = errors.New("utf7: invalid UTF-7")

// Encoding is the modified UTF-7 encoding.
var Encoding encoding.Encoding = modifiedUTF7{}

type modifiedUTF7 struct{}

func (modifiedUTF7) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decoder{}}
}

func (modifiedUTF7) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encoder{}}
}

type decoder struct {
	// the last sequence decoded was base64, another one can't follow
	encoded bool
}

var _ transform.Transformer = (*decoder)(nil)

func (d *decoder) Reset() {
	d.encoded = false
}

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		ch := src[nSrc]
		if ch < min || ch > max {
			return nDst, nSrc, ErrInvalidUTF7
		}

		if ch != '&' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ch
			nDst++
			nSrc++
			d.encoded = false
			continue
		}

		end := bytes.IndexByte(src[nSrc+1:], '-')
		if end < 0 {
			if atEOF {
				return nDst, nSrc, ErrInvalidUTF7
			}
			return nDst, nSrc, transform.ErrShortSrc
		}

		var out []byte
		if end == 0 {
			out = []byte{'&'}
			d.encoded = false
		} else {
			if d.encoded {
				return nDst, nSrc, ErrInvalidUTF7
			}
			out = decodeBase64(src[nSrc+1 : nSrc+1+end])
			if out == nil {
				return nDst, nSrc, ErrInvalidUTF7
			}
			d.encoded = true
		}

		if len(dst)-nDst < len(out) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += end + 2
	}
	return nDst, nSrc, nil
}

// decodeBase64 decodes a modified base64 UTF-16BE run into UTF-8. It returns
// nil if the run is invalid.
func decodeBase64(s []byte) []byte {
	// the base64 decoder skips newlines
	if bytes.ContainsAny(s, "\r\n") {
		return nil
	}
	b := make([]byte, b64.DecodedLen(len(s)))
	n, err := b64.Decode(b, s)
	if err != nil || n == 0 || n%2 != 0 {
		return nil
	}
	b = b[:n]

	var out []byte
	for i := 0; i < len(b); i += 2 {
		r := rune(b[i])<<8 | rune(b[i+1])
		if utf16.IsSurrogate(r) {
			i += 2
			if i >= len(b) {
				return nil
			}
			r = utf16.DecodeRune(r, rune(b[i])<<8|rune(b[i+1]))
			if r == repl {
				return nil
			}
		} else if min <= r && r <= max {
			// Printable ASCII must be represented directly
			return nil
		}
		out = utf8.AppendRune(out, r)
	}
	return out
}

type encoder struct{}

var _ transform.Transformer = (*encoder)(nil)

func (e *encoder) Reset() {}

func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		ch := src[nSrc]
		if min <= ch && ch <= max {
			out := []byte{ch}
			if ch == '&' {
				out = []byte("&-")
			}
			if len(dst)-nDst < len(out) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], out)
			nSrc++
			continue
		}

		i := nSrc
		var units []uint16
		for i < len(src) && (src[i] < min || src[i] > max) {
			r, size := utf8.DecodeRune(src[i:])
			if r == utf8.RuneError && size <= 1 {
				if !atEOF && !utf8.FullRune(src[i:]) {
					return nDst, nSrc, transform.ErrShortSrc
				}
				r = repl
			}
			units = utf16.AppendRune(units, r)
			i += size
		}
		if i == len(src) && !atEOF {
			// The run may continue in the next chunk
			return nDst, nSrc, transform.ErrShortSrc
		}

		raw := make([]byte, 0, 2*len(units))
		for _, u := range units {
			raw = append(raw, byte(u>>8), byte(u))
		}
		out := make([]byte, 0, b64.EncodedLen(len(raw))+2)
		out = append(out, '&')
		out = append(out, b64.EncodeToString(raw)...)
		out = append(out, '-')

		if len(dst)-nDst < len(out) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc = i
	}
	return nDst, nSrc, nil
}
