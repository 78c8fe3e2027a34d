// Package apperr defines the error taxonomy surfaced to API callers.
//
// Every error leaving the service layer wraps exactly one of the sentinel
// kinds below; the HTTP layer maps kinds to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)

// Error carries a kind, a message that is safe to show to the caller, and
// an optional internal cause that is never rendered.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newErr(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Validation reports a user-correctable input problem.
func Validation(msg string) error { return newErr(ErrValidation, msg, nil) }

// Unauthenticated reports a missing, invalid or expired credential.
func Unauthenticated(msg string) error { return newErr(ErrUnauthenticated, msg, nil) }

// Forbidden reports a valid identity that may not perform the operation.
func Forbidden(msg string) error { return newErr(ErrForbidden, msg, nil) }

// NotFound reports an absent resource, or one owned by someone else.
func NotFound(msg string) error { return newErr(ErrNotFound, msg, nil) }

// Conflict reports a uniqueness violation.
func Conflict(msg string) error { return newErr(ErrConflict, msg, nil) }

// Upstream reports an object store failure.
func Upstream(msg string, cause error) error { return newErr(ErrUpstream, msg, cause) }

// Message returns the caller-safe message of err, or "" when err carries none.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
