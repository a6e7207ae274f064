// Package apperr classifies failures crossing the store boundary so the
// transport layer can map them to a status without inspecting driver errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure class of an Error.
type Kind int

const (
	// Internal is any query, constraint or driver failure.
	Internal Kind = iota
	// Unavailable means a database connection could not be acquired.
	Unavailable
	// NotFound means the requested record is absent.
	NotFound
	// Invalid means the caller sent values that fail validation.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case NotFound:
		return "not_found"
	case Invalid:
		return "invalid"
	default:
		return "internal"
	}
}

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is the text shown to API callers. Internal errors carry the
// underlying driver message.
func (e *Error) Detail() string {
	if e.Kind == Internal && e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func InternalError(op string, err error) *Error {
	return &Error{Kind: Internal, Op: op, Err: err}
}

func UnavailableError(op string, err error) *Error {
	return &Error{Kind: Unavailable, Op: op, Message: "Database connection failed", Err: err}
}

func NotFoundError(op, msg string) *Error {
	return &Error{Kind: NotFound, Op: op, Message: msg}
}

func InvalidError(op, msg string) *Error {
	return &Error{Kind: Invalid, Op: op, Message: msg}
}

// KindOf reports the Kind of err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Detail returns the caller-facing message for err.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail()
	}
	return err.Error()
}

// HTTPStatus maps err to the status code returned by the API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Unavailable:
		return http.StatusServiceUnavailable
	case NotFound:
		return http.StatusNotFound
	case Invalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
