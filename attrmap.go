package gmimap

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// AttributeMap holds the attributes of a single FETCH response item, keyed
// by uppercase attribute name. Insertion order is kept.
type AttributeMap struct {
	names  []string
	values map[string]AttributeValue
}

// NewAttributeMap creates an empty attribute map.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{values: make(map[string]AttributeValue)}
}

// Set stores an attribute. Setting an existing name replaces its value and
// keeps its position.
func (m *AttributeMap) Set(name string, v AttributeValue) {
	name = strings.ToUpper(name)
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

// Get returns an attribute by name. The lookup is case-insensitive.
func (m *AttributeMap) Get(name string) (AttributeValue, bool) {
	v, ok := m.values[strings.ToUpper(name)]
	return v, ok
}

// Has reports whether the attribute is present.
func (m *AttributeMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Names returns the attribute names in insertion order.
func (m *AttributeMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of attributes.
func (m *AttributeMap) Len() int {
	return len(m.names)
}

func (m *AttributeMap) uniqueID(name string) (UniqueID, bool) {
	v, _ := m.Get(name)
	id, ok := v.(UniqueID)
	return id, ok
}

// UID returns the UID attribute.
func (m *AttributeMap) UID() (UniqueID, bool) {
	return m.uniqueID(AttrUID)
}

// MessageID returns the X-GM-MSGID attribute.
func (m *AttributeMap) MessageID() (UniqueID, bool) {
	return m.uniqueID(AttrGmailMsgID)
}

// ThreadID returns the X-GM-THRID attribute.
func (m *AttributeMap) ThreadID() (UniqueID, bool) {
	return m.uniqueID(AttrGmailThreadID)
}

// Labels returns the X-GM-LABELS attribute.
func (m *AttributeMap) Labels() (LabelList, bool) {
	v, _ := m.Get(AttrGmailLabels)
	l, ok := v.(LabelList)
	return l, ok
}

// Flags returns the FLAGS attribute.
func (m *AttributeMap) Flags() (FlagList, bool) {
	v, _ := m.Get(AttrFlags)
	l, ok := v.(FlagList)
	return l, ok
}

// Envelope returns the ENVELOPE attribute.
func (m *AttributeMap) Envelope() (*Envelope, bool) {
	v, _ := m.Get(AttrEnvelope)
	env, ok := v.(*Envelope)
	return env, ok
}

// InternalDate returns the INTERNALDATE attribute.
func (m *AttributeMap) InternalDate() (time.Time, bool) {
	v, _ := m.Get(AttrInternalDate)
	d, ok := v.(InternalDate)
	return d.Time(), ok
}

// Size returns the RFC822.SIZE attribute.
func (m *AttributeMap) Size() (int64, bool) {
	v, _ := m.Get(AttrRFC822Size)
	size, ok := v.(Size)
	return int64(size), ok
}

// Text returns a text attribute such as RFC822 or BODY[TEXT].
func (m *AttributeMap) Text(name string) (Text, bool) {
	v, _ := m.Get(name)
	t, ok := v.(Text)
	return t, ok
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *AttributeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(jsonValue(m.values[name]))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(v AttributeValue) any {
	switch v := v.(type) {
	case Text:
		if v.Nil {
			return nil
		}
		return v.Value
	case InternalDate:
		return v.Time().Format(time.RFC3339)
	case *BodyStructure:
		return v.Fields
	default:
		return v
	}
}
