package gmimap

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	gomessage "github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
)

// AttributeValue is the parsed value of a message attribute. It is one of
// *Envelope, FlagList, InternalDate, Text, Size, *BodyStructure, UniqueID or
// LabelList.
type AttributeValue interface {
	attributeValue()
}

var (
	_ AttributeValue = (*Envelope)(nil)
	_ AttributeValue = FlagList(nil)
	_ AttributeValue = InternalDate{}
	_ AttributeValue = Text{}
	_ AttributeValue = Size(0)
	_ AttributeValue = (*BodyStructure)(nil)
	_ AttributeValue = UniqueID(0)
	_ AttributeValue = LabelList(nil)
)

// Envelope is the envelope structure of a message.
type Envelope struct {
	Date      string // see Envelope.Time
	Subject   string
	From      []Address
	Sender    []Address
	ReplyTo   []Address
	To        []Address
	Cc        []Address
	Bcc       []Address
	InReplyTo string
	MessageID string
}

func (*Envelope) attributeValue() {}

// Time parses the Date field.
func (env *Envelope) Time() (time.Time, error) {
	return ParseMessageDateTime(env.Date)
}

// Address represents a sender or recipient of a message.
type Address struct {
	Name    string
	Mailbox string
	Host    string
}

// Addr returns the e-mail address in the form "foo@example.org".
//
// If the address is a start or end of group, the empty string is returned.
func (addr *Address) Addr() string {
	if addr.Mailbox == "" || addr.Host == "" {
		return ""
	}
	return addr.Mailbox + "@" + addr.Host
}

// IsGroupStart returns true if this address is a start of group marker.
//
// In that case, Mailbox contains the group name phrase.
func (addr *Address) IsGroupStart() bool {
	return addr.Host == "" && addr.Mailbox != ""
}

// IsGroupEnd returns true if this address is a end of group marker.
func (addr *Address) IsGroupEnd() bool {
	return addr.Host == "" && addr.Mailbox == ""
}

// InternalDate is the value of the INTERNALDATE attribute.
type InternalDate time.Time

func (InternalDate) attributeValue() {}

// Time returns the date as a time.Time.
func (d InternalDate) Time() time.Time {
	return time.Time(d)
}

// Text is the value of RFC822, RFC822.HEADER, RFC822.TEXT and BODY[...]
// attributes. An empty Text is distinct from a missing attribute.
type Text struct {
	Value string
	Nil   bool // the server sent NIL
}

func (Text) attributeValue() {}

// Header parses the text as a message header, e.g. the value of
// RFC822.HEADER or BODY[HEADER].
func (t Text) Header() (mail.Header, error) {
	br := bufio.NewReader(strings.NewReader(t.Value))
	h, err := textproto.ReadHeader(br)
	if err != nil {
		return mail.Header{}, fmt.Errorf("gmimap: failed to read header: %w", err)
	}
	return mail.Header{Header: gomessage.Header{Header: h}}, nil
}

// Size is the value of the RFC822.SIZE attribute.
type Size int64

func (Size) attributeValue() {}

// UniqueID is the value of the UID, X-GM-MSGID and X-GM-THRID attributes.
//
// Gmail IDs are unsigned 64-bit numbers on the wire, but some servers send
// them overflowed into the negative range. Uint64 recovers the unsigned
// value either way.
type UniqueID int64

func (UniqueID) attributeValue() {}

// Uint64 returns the ID as an unsigned 64-bit number.
func (id UniqueID) Uint64() uint64 {
	return uint64(id)
}

// Hex returns the ID in the hexadecimal form used in Gmail web URLs.
func (id UniqueID) Hex() string {
	return fmt.Sprintf("%x", uint64(id))
}
