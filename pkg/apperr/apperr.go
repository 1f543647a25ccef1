package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an expected, recoverable-by-caller failure.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindState             Kind = "state"
	KindInsufficientStock Kind = "insufficient_stock"
	KindInternal          Kind = "internal"
)

// Error carries a kind plus a human-readable message. Msg is safe to show to
// clients for every kind except KindInternal.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func State(format string, args ...any) *Error {
	return New(KindState, format, args...)
}

func InsufficientStock(format string, args ...any) *Error {
	return New(KindInsufficientStock, format, args...)
}

// Internal wraps an unexpected failure. Msg stays generic; err keeps the root
// cause for logs.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
}

// KindOf returns the kind of err, or KindInternal when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-safe message for err. Internal (and unclassified)
// errors map to a generic message so root causes never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "internal error"
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
