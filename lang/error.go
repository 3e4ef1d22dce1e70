package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidUnquotedString = NewError("invalid unquoted string")
	ErrUnsupportedLowering   = NewError("unsupported expression for lowering")
	ErrDuplicatePatternName  = NewError("duplicate name in dict pattern")
	ErrDictKeyMismatch       = NewError("dict argument does not match pattern keys")
	ErrDictLookup            = NewError("dict lookup failed")
	ErrUnboundVariable       = NewError("unbound variable")
	ErrNotAFunction          = NewError("value is not a function")
	ErrWrongType             = NewError("value has wrong type")
	ErrNotStatic             = NewError("expression is not a static document")
	ErrReadInput             = NewError("failed to read input")
	ErrQueryFailed           = NewError("query evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError reports a syntax error with its position in the source.
type ParseError struct {
	Msg    string
	Line   int
	Column int
	Source string // The original source input
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))
	buf.WriteString(": ")
	buf.WriteString(e.Msg)

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteString("\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Snippet returns the offending source line with a caret marking the column,
// or an empty string when the source is unavailable.
func (e *ParseError) Snippet() string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Line))
	src.WriteString(" | ")
	src.WriteString(lines[e.Line-1])
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(e.Line))+5)
	if e.Column > 0 {
		padding += strings.Repeat(" ", e.Column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}
