// Package domainerrors carries coded errors across service boundaries.
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate
// them into coded errors so callers can branch on a Code without string
// matching. Import it as dErrors.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation"
	CodeConflict           Code = "conflict"
	CodeInternal           Code = "internal"
	CodeInvariantViolation Code = "invariant_violation"
	CodeUnsupported        Code = "unsupported"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DomainCode lets typed errors outside this package participate in HasCode.
func (e *Error) DomainCode() Code {
	return e.Code
}

type coder interface {
	DomainCode() Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		if c, ok := err.(coder); ok && c.DomainCode() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
