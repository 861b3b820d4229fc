package gmimap

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// No lexical rule matches the input.
	ErrMalformedInput ErrorKind = 1 + iota
	// A list was expected but didn't start with '('.
	ErrExpectedOpenList
	// A list wasn't closed with ')'.
	ErrExpectedCloseList
	// The attribute name isn't in the parser's dispatch table.
	ErrUnknownAttribute
	// A token of another kind was required.
	ErrUnexpectedToken
	// The token has the right kind but an unacceptable value.
	ErrInvalidValue
)

func (kind ErrorKind) String() string {
	switch kind {
	case ErrMalformedInput:
		return "malformed input"
	case ErrExpectedOpenList:
		return "expected open list"
	case ErrExpectedCloseList:
		return "expected close list"
	case ErrUnknownAttribute:
		return "unknown attribute"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrInvalidValue:
		return "invalid value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// ParseError is returned when a FETCH response can't be parsed. A parse
// error is always fatal to the response being parsed: no partial attribute
// map is produced.
type ParseError struct {
	Kind     ErrorKind
	Pos      int    // byte offset in the response
	Name     string // attribute name, if known
	Expected string
	Actual   string
	Err      error
}

func (err *ParseError) Error() string {
	msg := fmt.Sprintf("gmimap: %v at offset %v", err.Kind, err.Pos)
	if err.Kind == ErrUnknownAttribute {
		return fmt.Sprintf("%v: %q", msg, err.Name)
	}
	if err.Name != "" {
		msg += fmt.Sprintf(" in %v", err.Name)
	}
	if err.Expected != "" {
		msg += fmt.Sprintf(": expected %v", err.Expected)
		if err.Actual != "" {
			msg += fmt.Sprintf(", got %v", err.Actual)
		}
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// Is reports whether target is a *ParseError of the same kind, so that
// errors.Is(err, &ParseError{Kind: ErrUnknownAttribute}) works.
func (err *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	return ok && other.Kind == err.Kind
}

// IsParseError returns true if the provided error is a parse error.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// KindOf returns the kind of a parse error, or zero if err isn't one.
func KindOf(err error) ErrorKind {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Kind
	}
	return 0
}
