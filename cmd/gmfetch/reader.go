package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// maxLiteralSize caps literals announced in the input.
const maxLiteralSize = 64 << 20

// responseReader splits a stream of server responses. A response ends at the
// first CRLF which isn't part of a literal. Bare LF line endings are
// accepted and turned into CRLF.
type responseReader struct {
	br *bufio.Reader
}

func newResponseReader(r io.Reader) *responseReader {
	return &responseReader{br: bufio.NewReader(r)}
}

// ReadResponse returns the next response, including its trailing CRLF. It
// returns io.EOF when the input is exhausted.
func (rr *responseReader) ReadResponse() ([]byte, error) {
	var buf bytes.Buffer
	for {
		line, err := rr.br.ReadBytes('\n')
		if err == io.EOF && len(line) > 0 {
			err = nil
		} else if err == io.EOF && buf.Len() > 0 {
			return nil, io.ErrUnexpectedEOF
		} else if err != nil {
			return nil, err
		}

		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if buf.Len() == 0 && len(line) == 0 {
			continue
		}
		buf.Write(line)
		buf.WriteString("\r\n")

		n, ok, err := literalSize(line)
		if err != nil {
			return nil, err
		} else if !ok {
			return buf.Bytes(), nil
		}
		if _, err := io.CopyN(&buf, rr.br, n); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("failed to read literal: %w", err)
		}
	}
}

// literalSize checks whether a line ends with a literal header "{n}".
func literalSize(line []byte) (int64, bool, error) {
	if len(line) < 3 || line[len(line)-1] != '}' {
		return 0, false, nil
	}
	i := bytes.LastIndexByte(line, '{')
	if i < 0 {
		return 0, false, nil
	}
	digits := line[i+1 : len(line)-1]
	if len(digits) == 0 {
		return 0, false, nil
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return 0, false, nil
		}
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil || n > maxLiteralSize {
		return 0, false, fmt.Errorf("literal too large: {%s}", digits)
	}
	return n, true, nil
}
