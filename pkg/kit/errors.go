package kit

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind names a failure class. It is rendered verbatim as the "error" field of
// an error response.
type Kind string

const (
	KindValidation       Kind = "ValidationError"
	KindNotFound         Kind = "NotFoundError"
	KindMethodNotAllowed Kind = "MethodNotAllowed"
	KindPayloadTooLarge  Kind = "PayloadTooLarge"
	KindUnavailable      Kind = "ServiceUnavailable"
	KindInternal         Kind = "InternalError"
)

const internalMessage = "Internal server error"

// Error is the single error variant handlers return. Anything that is not an
// *Error reaching WriteProblem is treated as KindInternal.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode falls back to 500 when Status is unset.
func (e *Error) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Status: http.StatusBadRequest}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg, Status: http.StatusNotFound}
}

func MethodNotAllowed(msg string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: msg, Status: http.StatusMethodNotAllowed}
}

func PayloadTooLarge(msg string, cause error) *Error {
	return &Error{Kind: KindPayloadTooLarge, Message: msg, Status: http.StatusRequestEntityTooLarge, Err: cause}
}

func Unavailable(msg string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, Status: http.StatusServiceUnavailable, Err: cause}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Status: http.StatusInternalServerError, Err: cause}
}

// AsError resolves err to an *Error, wrapping unknown errors as KindInternal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
