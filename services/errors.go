// Package services holds the application workflow and eligibility logic.
// Service functions return the sentinel errors below so controllers can
// translate each failure into the right HTTP status without string
// matching.
package services

import "errors"

// ErrNotFound is returned when the requested entity does not exist or is
// not visible to the caller. Handlers translate it into a 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation would duplicate existing state,
// such as submitting a second in-flight application for the same program.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ValidationError reports a violated business rule. Rule names the failed
// precondition so every gate surfaces as a distinct user-facing error.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
