package gmimap

import (
	"strings"
)

// BodyStructure is the value of the BODY and BODYSTRUCTURE attributes.
//
// The structure is kept as the generic nested list sent by the server: each
// element of Fields is a string, an int64, nil (for NIL) or a []any
// sub-list. Only the top-level shape is interpreted.
type BodyStructure struct {
	Fields []any
}

func (*BodyStructure) attributeValue() {}

// IsMultipart reports whether the structure describes a multipart body. A
// multipart body starts with one or more parenthesized parts.
func (bs *BodyStructure) IsMultipart() bool {
	if len(bs.Fields) == 0 {
		return false
	}
	_, ok := bs.Fields[0].([]any)
	return ok
}

// MediaType returns the lowercase media type, e.g. "text/plain" or
// "multipart/alternative". It returns the empty string if the structure is
// too short to tell.
func (bs *BodyStructure) MediaType() string {
	if bs.IsMultipart() {
		for _, f := range bs.Fields {
			if subtype, ok := f.(string); ok {
				return "multipart/" + strings.ToLower(subtype)
			}
		}
		return ""
	}
	if len(bs.Fields) < 2 {
		return ""
	}
	typ, ok1 := bs.Fields[0].(string)
	subtype, ok2 := bs.Fields[1].(string)
	if !ok1 || !ok2 {
		return ""
	}
	return strings.ToLower(typ) + "/" + strings.ToLower(subtype)
}

// Parts returns the child structures of a multipart body.
func (bs *BodyStructure) Parts() []*BodyStructure {
	var parts []*BodyStructure
	for _, f := range bs.Fields {
		l, ok := f.([]any)
		if !ok {
			break
		}
		parts = append(parts, &BodyStructure{Fields: l})
	}
	return parts
}
