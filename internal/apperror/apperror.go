// Package apperror defines the failure kinds every core operation reports
// and how they are rendered at the HTTP boundary.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified failure. Message is safe to show to callers;
// Err carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a missing or malformed field (400).
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Status: http.StatusBadRequest}
}

// Unprocessable reports a present but out-of-contract field such as a weak
// password or oversized content (422). It is still a validation failure.
func Unprocessable(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Status: http.StatusUnprocessableEntity}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg, Status: http.StatusUnauthorized}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Status: http.StatusNotFound}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, Status: http.StatusConflict}
}

// Internal wraps an unexpected failure. The cause is never shown to callers.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Status: http.StatusInternalServerError, Err: err}
}

// From classifies err. Anything that is not already an *Error is Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	return From(err).Kind
}

// Is reports whether err is classified as k.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
