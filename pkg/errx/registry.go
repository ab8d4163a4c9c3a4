package errx

import (
	"fmt"
	"sync"
)

// ErrorCode is a registered, prefixed error definition
type ErrorCode struct {
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry owns the error codes of one module. Codes are prefixed with the
// module name, e.g. OTP_CODE_EXPIRED.
type Registry struct {
	prefix string
	mu     sync.RWMutex
	codes  map[string]*ErrorCode
}

func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix, codes: make(map[string]*ErrorCode)}
}

// Register defines code. A zero httpStatus falls back to the type's default.
// Registering the same code twice panics.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) *ErrorCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.codes[code]; dup {
		panic(fmt.Sprintf("errx: %s_%s registered twice", r.prefix, code))
	}
	if httpStatus == 0 {
		httpStatus = errType.Status()
	}

	ec := &ErrorCode{
		Code:       r.prefix + "_" + code,
		Type:       errType,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	r.codes[code] = ec
	return ec
}

// New builds an error from a registered code
func (r *Registry) New(code *ErrorCode) *Error {
	return &Error{
		Code:       code.Code,
		Message:    code.Message,
		Type:       code.Type,
		HTTPStatus: code.HTTPStatus,
	}
}

// NewWithCause builds a registered error wrapping cause
func (r *Registry) NewWithCause(code *ErrorCode, cause error) *Error {
	e := r.New(code)
	e.Err = cause
	return e
}

// Lookup finds a code by its unprefixed name
func (r *Registry) Lookup(code string) (*ErrorCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ec, ok := r.codes[code]
	return ec, ok
}
