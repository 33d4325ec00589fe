// Package domainerrors provides coded errors shared across the domain,
// storage, and job layers. Codes let callers branch on error class without
// string matching, while the wrapped cause is preserved for logging.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for programmatic handling.
type Code string

const (
	// CodeValidation marks input the caller could have rejected up front.
	CodeValidation Code = "validation"

	// CodeInvariantViolation marks a domain rule that would be broken by
	// the requested change.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeNotFound marks a lookup that matched no live record.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a uniqueness or concurrent-modification clash.
	CodeConflict Code = "conflict"

	// CodeUsage marks a caller bug, such as transaction misuse. These are
	// deliberately distinct from CodeInternal: retrying will not help.
	CodeUsage Code = "usage"

	// CodeInternal marks store or infrastructure failures surfaced to the
	// caller unmodified in the cause chain.
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	code  Code
	msg   string
	cause error
}

// New returns a coded error with the given message.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Newf returns a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message, preserving err as the cause.
// Returns nil when err is nil.
func Wrap(err error, code Code, msg string) *Error {
	if err == nil {
		return nil
	}
	return &Error{code: code, msg: msg, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the classification of this error.
func (e *Error) Code() Code {
	return e.code
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}
