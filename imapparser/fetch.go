package imapparser

import (
	"fmt"
	"math"
	"strings"

	"github.com/gmimap/go-gmimap"
	"github.com/gmimap/go-gmimap/internal/imapwire"
)

// FetchResponse is an untagged FETCH response.
type FetchResponse struct {
	SeqNum uint32
	Attrs  *gmimap.AttributeMap
}

// ParseAttributes parses a parenthesized list of message attributes, e.g.
// `(UID 42 X-GM-LABELS (\Inbox))`. Bytes after the closing parenthesis are
// ignored.
//
// On error, no attribute is returned.
func (p *Parser) ParseAttributes(b []byte) (*gmimap.AttributeMap, error) {
	dec := p.newDecoder(b)
	attrs, err := p.readMsgAtt(dec)
	observeParse(err)
	if err != nil {
		return nil, err
	}
	return attrs, nil
}

// ParseFetch parses a complete untagged FETCH response line, e.g.
// "* 12 FETCH (UID 42)\r\n". The trailing CRLF is optional.
func (p *Parser) ParseFetch(b []byte) (*FetchResponse, error) {
	dec := p.newDecoder(b)
	resp, err := p.readFetch(dec)
	observeParse(err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (p *Parser) readFetch(dec *Decoder) (*FetchResponse, error) {
	if _, err := dec.expect(imapwire.TokenStar); err != nil {
		return nil, err
	}
	if err := dec.ExpectSP(); err != nil {
		return nil, err
	}

	pos := dec.Pos()
	seqNum, err := dec.Number()
	if err != nil {
		return nil, err
	}
	if seqNum <= 0 || seqNum > math.MaxUint32 {
		return nil, dec.invalid(pos, fmt.Errorf("sequence number %v out of range", seqNum))
	}
	if err := dec.ExpectSP(); err != nil {
		return nil, err
	}

	tok, err := dec.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != imapwire.TokenAtom || !strings.EqualFold(tok.Raw, "FETCH") {
		return nil, dec.unexpected(tok, "FETCH")
	}
	if err := dec.ExpectSP(); err != nil {
		return nil, err
	}

	attrs, err := p.readMsgAtt(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.accept(imapwire.TokenCRLF); err != nil {
		return nil, err
	}
	if _, err := dec.expect(imapwire.TokenEOF); err != nil {
		return nil, err
	}
	return &FetchResponse{SeqNum: uint32(seqNum), Attrs: attrs}, nil
}

func (p *Parser) readMsgAtt(dec *Decoder) (*gmimap.AttributeMap, error) {
	tok, err := dec.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != imapwire.TokenLParen {
		return nil, dec.mismatch(tok, imapwire.TokenLParen)
	}

	attrs := gmimap.NewAttributeMap()
	err = dec.ExpectList(func() error {
		tok, err := dec.next()
		if err != nil {
			return err
		}
		if tok.Kind != imapwire.TokenAtom {
			return dec.unexpected(tok, "attribute name")
		}

		name := strings.ToUpper(tok.Raw)
		f, ok := p.attrs[name]
		if !ok {
			p.options.logger().Printf("imapparser: unknown FETCH attribute %q", tok.Raw)
			unknownAttributes.Inc()
			return &gmimap.ParseError{
				Kind: gmimap.ErrUnknownAttribute,
				Pos:  tok.Pos,
				Name: tok.Raw,
			}
		}

		dec.name = name
		key, v, err := f(dec, name)
		dec.name = ""
		if err != nil {
			return err
		}
		attrs.Set(key, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attrs, nil
}
