package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Sentinel errors. Every error returned by this package matches exactly one
// of them with [errors.Is], and carries the offending name and line index as
// attributes.
var (
	ErrInvalidVariableDefinition = NewError("invalid variable definition")
	ErrDuplicateVariable         = NewError("duplicate variable definition")
	ErrAmbiguousVariableType     = NewError("ambiguous variable: cannot determine if it is a list or dictionary")
	ErrUndefinedVariable         = NewError("undefined variable")
	ErrCannotPrintList           = NewError("cannot print list")
	ErrCannotPrintDictionary     = NewError("cannot print dictionary")
	ErrUndefinedIterable         = NewError("cannot iterate on nonexistent variable")
	ErrCannotIterateScalar       = NewError("cannot iterate on scalar variable")
	ErrUnhandledSymbolType       = NewError("unhandled symbol type")
	ErrUnterminatedBlock         = NewError("unterminated block")
	ErrMalformedDirective        = NewError("malformed directive")
	ErrUnsupportedLoopVariables  = NewError("multiple loop variables are not supported")
	ErrReadInput                 = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError converts err into an *Error, returning it unchanged if it
// already is one.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The message is rendered as "<msg> [k=v ...]: <cause>", omitting whichever
// parts are empty.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if len(e.attrs) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteByte('[')

		for i, a := range e.attrs {
			if i > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(a.String())
		}

		sb.WriteByte(']')
	}

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same message. This lets a
// sentinel match every error derived from it with [Error.With] or
// [Error.Wrap].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return e.msg == t.msg
}

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
		attrs: e.attrs, // share attrs
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

// Attr returns the value of the first attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}
