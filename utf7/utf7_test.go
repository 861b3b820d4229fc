package utf7_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmimap/go-gmimap/utf7"
)

var decodeTests = []struct {
	in  string
	out string
	ok  bool
}{
	{"", "", true},
	{"INBOX", "INBOX", true},
	{"&-abc", "&abc", true},
	{"a&-b&-c", "a&b&c", true},
	{"&ABk-", "\x19", true},
	{"&-,&-&AP8-&-", "&,&ÿ&", true},
	{"abc &- &AP8A,wD,- &- xyz", "abc & ÿÿÿ & xyz", true},
	{"Bo&AO4-te &AOA- lettres", "Boîte à lettres", true},
	{"&ZeVnLIqe-", "日本語", true},
	{"x &2D3eCg- y", "x \U0001f60a y", true},
	{"00 &MEIwQjBC- 00", "00 " + strings.Repeat("あ", 3) + " 00", true},

	// Illegal code point in ASCII
	{"\x00", "", false},
	{"abc\n", "", false},
	{"abc\x7Fxyz", "", false},
	{"Boîte", "", false},

	// Invalid Base64
	{"&/+8-", "", false},
	{"&*-", "", false},
	{"&ZeVnLIqe -", "", false},
	{"&ZeVnLIqe\r\n-", "", false},
	{"&AAAAHw=-", "", false},

	// Odd byte count
	{"&2A-", "", false},
	{"&AAAAHwB,A-", "", false},

	// Implicit shift
	{"&", "", false},
	{"&Jjo", "", false},
	{"abc&Jjo", "", false},

	// Adjacent Base64 runs
	{"&U,BTFw-&ZeVnLIqe-", "", false},

	// ASCII in Base64
	{"&AGE-", "", false},
	{"&JjoAIQ-", "", false},

	// Bad surrogate
	{"&2AA-", "", false},
	{"&3AA-", "", false},
	{"&2AAAQQ-", "", false},
	{"&3ADYAA-", "", false},
}

func TestDecoder(t *testing.T) {
	dec := utf7.Encoding.NewDecoder()
	for _, test := range decodeTests {
		out, err := dec.String(test.in)
		if test.ok {
			assert.NoError(t, err, "decoding %+q", test.in)
			assert.Equal(t, test.out, out, "decoding %+q", test.in)
		} else {
			assert.Error(t, err, "decoding %+q", test.in)
			assert.Empty(t, out, "decoding %+q", test.in)
		}
	}
}

func TestEncoder(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"", ""},
		{"INBOX", "INBOX"},
		{"&", "&-"},
		{"Boîte à lettres", "Bo&AO4-te &AOA- lettres"},
		{"日本語", "&ZeVnLIqe-"},
		{"x \U0001f60a y", "x &2D3eCg- y"},
	}

	enc := utf7.Encoding.NewEncoder()
	dec := utf7.Encoding.NewDecoder()
	for _, test := range tests {
		out, err := enc.String(test.in)
		assert.NoError(t, err, "encoding %+q", test.in)
		assert.Equal(t, test.out, out, "encoding %+q", test.in)

		back, err := dec.String(out)
		assert.NoError(t, err, "decoding %+q", out)
		assert.Equal(t, test.in, back)
	}
}
