// Package errors provides a coded error type with wrapping and metadata.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode tells the API layer which status to answer with and whether the
// message is safe to show.
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeUnavailable is a store or deadline failure; retrying may work
	ErrorCodeUnavailable

	// ErrorCodeInvalidArgument is a well formed request the engine cannot serve
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is a malformed request body or stored rule
	ErrorCodeValidation

	ErrorCodeNotFound

	// ErrorCodeMisconfigured is a rule with no reachable business day
	ErrorCodeMisconfigured

	ErrorCodeDuplicateKey

	ErrorCodeDB
)

func statusOf(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument, ErrorCodeMisconfigured:
		return http.StatusUnprocessableEntity
	case ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeDuplicateKey:
		return http.StatusConflict
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a code and, for rule and request validation, the offending field.
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the body of an API error response.
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

func (e *Error) Field() string { return e.field }

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the outermost code in err's chain, or ErrorCodeUnknown.
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func HTTPStatus(err error) int { return statusOf(CodeOf(err)) }

// WithField returns a copy of err naming field. Foreign errors are returned unchanged.
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// InvalidArgf reports a request the engine cannot answer, such as a year out of range.
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// internalMessage replaces the detail of 5xx errors in responses.
const internalMessage = "internal server error"

// HTTP returns the status and response body for err. Server side failures
// keep their code but not their message.
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	status := HTTPStatus(err)
	w := Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	if e, ok := As(err); ok {
		w = Wire{Code: e.code, Message: e.Error(), Field: e.field}
	}
	if status >= http.StatusInternalServerError {
		w = Wire{Code: w.Code, Message: internalMessage}
	}
	return status, w
}
