package imapparser

import (
	"fmt"
	"strings"

	"github.com/gmimap/go-gmimap"
	"github.com/gmimap/go-gmimap/internal/imapwire"
)

func readEnvelope(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	var envelope gmimap.Envelope
	if err := dec.expectOpen(); err != nil {
		return "", nil, err
	}

	var (
		subject string
		err     error
	)
	if envelope.Date, _, err = dec.NString(); err != nil {
		return "", nil, err
	}
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}
	if subject, _, err = dec.NString(); err != nil {
		return "", nil, err
	}
	envelope.Subject = dec.options.decodeText(subject)

	addrLists := []*[]gmimap.Address{
		&envelope.From,
		&envelope.Sender,
		&envelope.ReplyTo,
		&envelope.To,
		&envelope.Cc,
		&envelope.Bcc,
	}
	for _, out := range addrLists {
		if err := dec.ExpectSP(); err != nil {
			return "", nil, err
		}
		l, err := readAddressList(dec)
		if err != nil {
			return "", nil, err
		}
		*out = l
	}

	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}
	if envelope.InReplyTo, _, err = dec.NString(); err != nil {
		return "", nil, err
	}
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}
	if envelope.MessageID, _, err = dec.NString(); err != nil {
		return "", nil, err
	}

	if err := dec.expectClose(); err != nil {
		return "", nil, err
	}
	return name, &envelope, nil
}

func readAddressList(dec *Decoder) ([]gmimap.Address, error) {
	var l []gmimap.Address
	_, err := dec.ExpectNList(func() error {
		addr, err := readAddress(dec)
		if err != nil {
			return err
		}
		l = append(l, *addr)
		return nil
	})
	return l, err
}

func readAddress(dec *Decoder) (*gmimap.Address, error) {
	if err := dec.expectOpen(); err != nil {
		return nil, err
	}

	var fields [4]string // name, adl, mailbox, host
	for i := range fields {
		if i > 0 {
			if err := dec.ExpectSP(); err != nil {
				return nil, err
			}
		}
		s, _, err := dec.NString()
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}

	if err := dec.expectClose(); err != nil {
		return nil, err
	}
	return &gmimap.Address{
		Name:    dec.options.decodeText(fields[0]),
		Mailbox: fields[2],
		Host:    fields[3],
	}, nil
}

func readFlags(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	flags := gmimap.FlagList{}
	err := dec.ExpectList(func() error {
		flag, err := dec.Flag()
		if err != nil {
			return err
		}
		flags = append(flags, flag)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return name, flags, nil
}

func readLabels(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	labels := gmimap.LabelList{}
	err := dec.ExpectList(func() error {
		label, err := dec.AString()
		if err != nil {
			return err
		}
		labels = append(labels, label)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return name, labels, nil
}

func readInternalDate(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	pos := dec.Pos()
	s, err := dec.Quoted()
	if err != nil {
		return "", nil, err
	}
	t, err := gmimap.ParseDateTime(s)
	if err != nil {
		return "", nil, dec.invalid(pos, err)
	}
	return name, gmimap.InternalDate(t), nil
}

func readText(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	s, isNil, err := dec.NString()
	if err != nil {
		return "", nil, err
	}
	return name, gmimap.Text{Value: s, Nil: isNil}, nil
}

func readSize(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	pos := dec.Pos()
	n, err := dec.Number()
	if err != nil {
		return "", nil, err
	}
	if n < 0 {
		return "", nil, dec.invalid(pos, fmt.Errorf("negative size %v", n))
	}
	return name, gmimap.Size(n), nil
}

func readUniqueID(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}

	n, err := dec.Number()
	if err != nil {
		return "", nil, err
	}
	return name, gmimap.UniqueID(n), nil
}

// readBody handles BODY and BODYSTRUCTURE. BODY followed by a section,
// e.g. BODY[HEADER.FIELDS (SUBJECT)]<0>, is a body section text stored under
// its full name.
func readBody(dec *Decoder, name string) (string, gmimap.AttributeValue, error) {
	if name == gmimap.AttrBody && dec.IsLBracket() {
		section, err := readSection(dec)
		if err != nil {
			return "", nil, err
		}
		_, text, err := readText(dec, "")
		if err != nil {
			return "", nil, err
		}
		return name + section, text, nil
	}

	if err := dec.ExpectSP(); err != nil {
		return "", nil, err
	}
	fields, err := readBodyList(dec)
	if err != nil {
		return "", nil, err
	}
	return name, &gmimap.BodyStructure{Fields: fields}, nil
}

// readSection reads "[section]" and an optional "<origin>", and returns them
// verbatim. Parentheses inside the section must balance.
func readSection(dec *Decoder) (string, error) {
	start := dec.Pos()
	brackets, parens := 0, 0
	for {
		tok, err := dec.next()
		if err != nil {
			return "", err
		}
		switch tok.Kind {
		case imapwire.TokenLBracket:
			brackets++
		case imapwire.TokenRBracket:
			if parens > 0 {
				return "", dec.mismatch(tok, imapwire.TokenRParen)
			}
			brackets--
		case imapwire.TokenLParen:
			parens++
		case imapwire.TokenRParen:
			if parens == 0 {
				return "", dec.unexpected(tok, "']'")
			}
			parens--
		case imapwire.TokenEOF, imapwire.TokenCRLF, imapwire.TokenLiteral:
			return "", dec.unexpected(tok, "']'")
		}
		if brackets == 0 {
			break
		}
	}
	end := dec.Pos()

	tok, err := dec.peek()
	if err != nil {
		return "", err
	}
	if tok.Kind == imapwire.TokenAtom && strings.HasPrefix(tok.Raw, "<") && strings.HasSuffix(tok.Raw, ">") {
		dec.lex.Next()
		end = tok.Pos + len(tok.Raw)
	}
	return dec.lex.Text(start, end), nil
}

func readBodyList(dec *Decoder) ([]any, error) {
	fields := []any{}
	err := dec.ExpectList(func() error {
		v, err := readBodyField(dec)
		if err != nil {
			return err
		}
		fields = append(fields, v)
		return nil
	})
	return fields, err
}

func readBodyField(dec *Decoder) (any, error) {
	tok, err := dec.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case imapwire.TokenLParen:
		return readBodyList(dec)
	case imapwire.TokenNil:
		dec.lex.Next()
		return nil, nil
	case imapwire.TokenNumber:
		dec.lex.Next()
		return tok.Num, nil
	case imapwire.TokenQuoted, imapwire.TokenLiteral:
		return dec.String()
	default:
		return dec.Atom()
	}
}
