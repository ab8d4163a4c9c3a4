package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type groups errors by how the caller should react
type Type string

const (
	TypeInternal      Type = "INTERNAL"
	TypeValidation    Type = "VALIDATION"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
)

var defaultStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeAuthorization: http.StatusUnauthorized,
	TypeNotFound:      http.StatusNotFound,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeExternal:      http.StatusBadGateway,
	TypeInternal:      http.StatusInternalServerError,
}

func (t Type) String() string { return string(t) }

// Status is the HTTP status used when no explicit one was registered
func (t Type) Status() int {
	if s, ok := defaultStatus[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is the error returned across module boundaries. Code is stable and
// safe to expose; Err is the cause and stays server-side.
type Error struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"http_status"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same code, so errors.Is works against a
// freshly built registry error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetail attaches client-visible context and returns e
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Wrap annotates err with message. A wrapped *Error keeps its code, status and
// details; anything else gets a code derived from errType.
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}

	var inner *Error
	if errors.As(err, &inner) {
		return &Error{
			Code:       inner.Code,
			Message:    message,
			Type:       errType,
			HTTPStatus: inner.HTTPStatus,
			Details:    inner.Details,
			Err:        err,
		}
	}

	return &Error{
		Code:       string(errType),
		Message:    message,
		Type:       errType,
		HTTPStatus: errType.Status(),
		Err:        err,
	}
}

// HasCode reports whether any *Error in err's chain carries code
func HasCode(err error, code *ErrorCode) bool {
	if code == nil {
		return false
	}
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code.Code {
			return true
		}
		err = e.Err
	}
	return false
}
