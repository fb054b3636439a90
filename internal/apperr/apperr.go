// Package apperr defines the error taxonomy shared by the relay endpoint,
// the API client and the page renderer. Every failure that reaches a user is
// an *Error carrying one of a closed set of kinds.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the wire tag of an error envelope.
type Kind string

const (
	// KindValidation means the client input was malformed and must be fixed.
	KindValidation Kind = "validation_error"
	// KindInternal is an unexpected or opaque failure, including an
	// unreachable backend.
	KindInternal Kind = "internal_error"
	// KindService means the backend was reached but reported a failure.
	KindService Kind = "service_error"
	// KindNotFound means the requested resource does not exist.
	KindNotFound Kind = "not_found"
	// KindUnknown stands in for any tag outside the closed set.
	KindUnknown Kind = "unknown"
)

// ParseKind maps a wire tag onto the closed set of kinds.
func ParseKind(tag string) Kind {
	switch k := Kind(tag); k {
	case KindValidation, KindInternal, KindService, KindNotFound:
		return k
	default:
		return KindUnknown
	}
}

// HTTPStatus returns the status code used when this kind is returned by the relay.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a displayable failure. Err is never serialized.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Status  int // Overrides the kind's status code when non-zero
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for this error.
func (e *Error) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Kind.HTTPStatus()
}

// WithStatus overrides the status code derived from the kind.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// WithDetails sets the optional details object.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }

func Internal(message string) *Error { return New(KindInternal, message) }

func Service(message string) *Error { return New(KindService, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

// From normalizes any error into an *Error. Errors that are not already an
// *Error become internal_error with a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(KindInternal, "Something went wrong", err)
}
