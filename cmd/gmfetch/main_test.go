package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmimap/go-gmimap"
	"github.com/gmimap/go-gmimap/imapparser"
)

func TestResponseReader(t *testing.T) {
	in := "* 1 FETCH (UID 1)\r\n" +
		"\n" +
		"* 2 FETCH (BODY[TEXT] {7}\r\na\r\nb\r\n) UID 2)\n" +
		"* 3 FETCH (UID 3)"
	rr := newResponseReader(strings.NewReader(in))

	var got []string
	for {
		b, err := rr.ReadResponse()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, string(b))
	}
	want := []string{
		"* 1 FETCH (UID 1)\r\n",
		"* 2 FETCH (BODY[TEXT] {7}\r\na\r\nb\r\n) UID 2)\r\n",
		"* 3 FETCH (UID 3)\r\n",
	}
	assert.Equal(t, want, got)
}

func TestResponseReader_truncatedLiteral(t *testing.T) {
	rr := newResponseReader(strings.NewReader("* 1 FETCH (RFC822 {10}\r\nabc"))
	_, err := rr.ReadResponse()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestLiteralSize(t *testing.T) {
	tests := []struct {
		line string
		n    int64
		ok   bool
	}{
		{"* 1 FETCH (RFC822 {12}", 12, true},
		{"* 1 FETCH (RFC822 {0}", 0, true},
		{"* 1 FETCH (UID 1)", 0, false},
		{"{}", 0, false},
		{"{a1}", 0, false},
	}
	for _, test := range tests {
		n, ok, err := literalSize([]byte(test.line))
		require.NoError(t, err)
		assert.Equal(t, test.ok, ok, "literalSize(%q)", test.line)
		assert.Equal(t, test.n, n, "literalSize(%q)", test.line)
	}

	_, _, err := literalSize([]byte("{99999999999}"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	p := imapparser.New(&imapparser.Options{Extensions: []*imapparser.Extension{imapparser.Gmail}})
	in := "* 1 FETCH (X-GM-MSGID -3 X-GM-LABELS (\\Inbox \"Mailing List\"))\r\n" +
		"* 2 FETCH (RFC822.SIZE 10 FLAGS (\\Seen))\r\n"

	var buf bytes.Buffer
	err := run(p, newResponseReader(strings.NewReader(in)), json.NewEncoder(&buf))
	require.NoError(t, err)
	want := `{"seq":1,"attrs":{"X-GM-MSGID":-3,"X-GM-LABELS":["\\Inbox","Mailing List"]}}` + "\n" +
		`{"seq":2,"attrs":{"RFC822.SIZE":10,"FLAGS":["\\Seen"]}}` + "\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	err = run(p, newResponseReader(strings.NewReader("* 1 FETCH (X-NOPE 1)\r\n")), json.NewEncoder(&buf))
	assert.Equal(t, gmimap.ErrUnknownAttribute, gmimap.KindOf(err))
	assert.Empty(t, buf.String())
}
