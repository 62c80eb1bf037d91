// Package domainerrors provides coded errors shared across services so
// transport layers can map failures to responses without string matching.
package domainerrors

import "fmt"

// Code identifies a class of failure.
type Code string

const (
	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	// CodeSchema marks fatal dataset-level failures: the batch cannot be
	// processed at all, no partial output is produced.
	CodeSchema Code = "schema_error"
	// CodeInternal marks broken internal guarantees. These must be raised
	// loudly, never treated as a data-quality finding.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with a human-readable description.
type Error struct {
	Code    Code
	Message string
	wrapped error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds a domain error from a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a cause to a coded error.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, wrapped: cause}
}

// CodeOf extracts the domain code from an error chain, defaulting to
// CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	for err != nil {
		if de, ok := err.(*Error); ok {
			return de.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return CodeInternal
}
