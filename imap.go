// Package gmimap describes the message attributes returned in IMAP FETCH
// responses, including the Gmail extension attributes.
//
// FETCH responses are defined in RFC 3501 section 7.4.2. The Gmail
// extensions (X-GM-LABELS, X-GM-MSGID, X-GM-THRID) are documented at
// https://developers.google.com/gmail/imap/imap-extensions.
//
// Parsing lives in the imapparser package.
package gmimap

// Message attribute names, as they appear in FETCH responses.
const (
	AttrEnvelope      = "ENVELOPE"
	AttrFlags         = "FLAGS"
	AttrInternalDate  = "INTERNALDATE"
	AttrRFC822        = "RFC822"
	AttrRFC822Header  = "RFC822.HEADER"
	AttrRFC822Text    = "RFC822.TEXT"
	AttrRFC822Size    = "RFC822.SIZE"
	AttrBody          = "BODY"
	AttrBodyStructure = "BODYSTRUCTURE"
	AttrUID           = "UID"

	// Gmail extensions
	AttrGmailLabels   = "X-GM-LABELS"
	AttrGmailMsgID    = "X-GM-MSGID"
	AttrGmailThreadID = "X-GM-THRID"
)

// Flag is a message flag.
//
// Message flags are defined in RFC 9051 section 2.3.2.
type Flag string

const (
	// System flags
	FlagSeen     Flag = "\\Seen"
	FlagAnswered Flag = "\\Answered"
	FlagFlagged  Flag = "\\Flagged"
	FlagDeleted  Flag = "\\Deleted"
	FlagDraft    Flag = "\\Draft"
	FlagRecent   Flag = "\\Recent"

	// Widely used flags
	FlagForwarded Flag = "$Forwarded"
	FlagMDNSent   Flag = "$MDNSent" // Message Disposition Notification sent
	FlagJunk      Flag = "$Junk"
	FlagNotJunk   Flag = "$NotJunk"
	FlagPhishing  Flag = "$Phishing"
	FlagImportant Flag = "$Important" // RFC 8457

	// Permanent flags
	FlagWildcard Flag = "\\*"
)

// FlagList is the value of the FLAGS attribute. Order is preserved.
type FlagList []Flag

func (FlagList) attributeValue() {}

// Has reports whether the list contains flag.
func (l FlagList) Has(flag Flag) bool {
	for _, f := range l {
		if f == flag {
			return true
		}
	}
	return false
}
