package velocypack

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies the failures the core can report, grouped the way
// the format description does: parse-time, build-time, read-time, internal.
type ErrorKind int

const (
	// Parse-time.
	ErrParseError ErrorKind = iota + 1
	ErrInvalidUtf8Sequence
	ErrExpectingAttributeName
	ErrUnexpectedControlCharacter
	ErrNumberOutOfRange

	// Build-time.
	ErrBuilderUnexpectedType
	ErrBuilderUnexpectedValue
	ErrBuilderNeedOpenObject
	ErrBuilderNeedOpenArray
	ErrBuilderNeedOpenCompound
	ErrBuilderKeyAlreadyWritten
	ErrBuilderKeyMustBeString
	ErrBuilderNotSealed
	ErrDuplicateAttributeName

	// Read-time.
	ErrInvalidValueType
	ErrIndexOutOfBounds
	ErrNoJsonEquivalent
	ErrNotImplemented

	// Internal.
	ErrInternalError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParseError:
		return "ParseError"
	case ErrInvalidUtf8Sequence:
		return "InvalidUtf8Sequence"
	case ErrExpectingAttributeName:
		return "ExpectingAttributeName"
	case ErrUnexpectedControlCharacter:
		return "UnexpectedControlCharacter"
	case ErrNumberOutOfRange:
		return "NumberOutOfRange"
	case ErrBuilderUnexpectedType:
		return "BuilderUnexpectedType"
	case ErrBuilderUnexpectedValue:
		return "BuilderUnexpectedValue"
	case ErrBuilderNeedOpenObject:
		return "BuilderNeedOpenObject"
	case ErrBuilderNeedOpenArray:
		return "BuilderNeedOpenArray"
	case ErrBuilderNeedOpenCompound:
		return "BuilderNeedOpenCompound"
	case ErrBuilderKeyAlreadyWritten:
		return "BuilderKeyAlreadyWritten"
	case ErrBuilderKeyMustBeString:
		return "BuilderKeyMustBeString"
	case ErrBuilderNotSealed:
		return "BuilderNotSealed"
	case ErrDuplicateAttributeName:
		return "DuplicateAttributeName"
	case ErrInvalidValueType:
		return "InvalidValueType"
	case ErrIndexOutOfBounds:
		return "IndexOutOfBounds"
	case ErrNoJsonEquivalent:
		return "NoJsonEquivalent"
	case ErrNotImplemented:
		return "NotImplemented"
	case ErrInternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned by every component of the package. Line
// and Column are populated for parser errors only.
type Error struct {
	Kind   ErrorKind
	Detail string
	Line   int
	Column int
	cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("velocypack: %s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Detail)
	}
	return fmt.Sprintf("velocypack: %s: %s", e.Kind, e.Detail)
}

// Unwrap exposes the wrapped cause, if any, so errors.Is/As keep working
// through cockroachdb/errors.
func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func wrapError(kind ErrorKind, cause error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, cause: errors.Wrap(cause, detail)}
}

func newParseError(kind ErrorKind, line, column int, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Line: line, Column: column}
}

// NewError is the exported form of the package's error constructor, for
// consumers outside velocypack itself (collection, parser) that need to
// report one of this package's ErrorKinds without poking at Error's fields
// directly.
func NewError(kind ErrorKind, detail string) *Error {
	return newError(kind, detail)
}

// NewParseError is NewError plus source position, for the parser package's
// scanner errors.
func NewParseError(kind ErrorKind, line, column int, detail string) *Error {
	return newParseError(kind, line, column, detail)
}

// WrapError is NewError plus an underlying cause, preserved so
// errors.Is/errors.As can see through to it via Unwrap.
func WrapError(kind ErrorKind, cause error, detail string) *Error {
	return wrapError(kind, cause, detail)
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

var errNotImplemented = newError(ErrNotImplemented, "not implemented")
