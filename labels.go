package gmimap

import (
	"fmt"

	"github.com/gmimap/go-gmimap/utf7"
)

// Gmail system labels.
const (
	LabelInbox     = "\\Inbox"
	LabelSent      = "\\Sent"
	LabelDraft     = "\\Draft"
	LabelImportant = "\\Important"
	LabelStarred   = "\\Starred"
	LabelTrash     = "\\Trash"
	LabelSpam      = "\\Spam"
	LabelAll       = "\\All"
)

// LabelList is the value of the X-GM-LABELS attribute.
//
// Labels are kept as sent by the server: system labels start with a
// backslash and user labels are encoded in modified UTF-7 like mailbox
// names. An empty, non-nil list means the message has no labels.
type LabelList []string

func (LabelList) attributeValue() {}

// Contains reports whether the list contains label.
func (l LabelList) Contains(label string) bool {
	for _, s := range l {
		if s == label {
			return true
		}
	}
	return false
}

// Decode returns the labels with modified UTF-7 decoded.
func (l LabelList) Decode() ([]string, error) {
	out := make([]string, len(l))
	for i, s := range l {
		dec, err := utf7.Encoding.NewDecoder().String(s)
		if err != nil {
			return nil, fmt.Errorf("gmimap: invalid label %q: %w", s, err)
		}
		out[i] = dec
	}
	return out, nil
}
