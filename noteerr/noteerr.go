// SPDX-License-Identifier: MIT

// Package noteerr provides typed errors for cwnote operations so that
// callers can distinguish backend failures from malformed documents or bad
// selections without parsing messages.
package noteerr

import (
	"errors"
	"fmt"
)

// Code classifies cwnote errors.
type Code string

const (
	// CodeNotFound indicates the dashboard does not exist or has no body.
	CodeNotFound Code = "NOT_FOUND"

	// CodeMalformedDocument indicates a dashboard body that is not
	// parseable or has an unsupported shape.
	CodeMalformedDocument Code = "MALFORMED_DOCUMENT"

	// CodeBackendWriteFailed indicates the dashboard update call failed.
	CodeBackendWriteFailed Code = "BACKEND_WRITE_FAILED"

	// CodeExportFailed indicates the advisory export write failed. It never
	// fails a run.
	CodeExportFailed Code = "EXPORT_FAILED"

	// CodeInvalidSelection indicates both or neither of the selection modes
	// were supplied.
	CodeInvalidSelection Code = "INVALID_SELECTION"

	// CodeInternal indicates an internal error.
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is a typed error carrying the offending dashboard context in its
// message. It supports errors.As and errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code, message and cause. The cause may
// be nil.
func New(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Err: cause}
}

// CodeOf returns the code of err, or CodeInternal when err is not a typed
// cwnote error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
