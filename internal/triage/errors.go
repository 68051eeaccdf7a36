package triage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownQuestion rejects an answer for anything other than the
	// currently pending question.
	ErrUnknownQuestion = errors.New("not the pending question")

	// ErrInvalidState rejects interview operations on a terminal session.
	ErrInvalidState = errors.New("session is terminal")

	// ErrNotTerminal rejects a recommendation request before the
	// interview has completed.
	ErrNotTerminal = errors.New("interview is not complete")
)

// ValidationError rejects a malformed or out-of-range answer value. It
// carries enough detail for the caller to re-prompt the same question.
type ValidationError struct {
	QuestionID string
	Reason     string
	Expected   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %q: %s (expected %s)", e.QuestionID, e.Reason, e.Expected)
}

// DataIntegrityError marks malformed reference configuration detected at
// load time. The process must not start with broken reference data.
type DataIntegrityError struct {
	Source string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("reference data %s: %s", e.Source, e.Reason)
}

func integrityErr(source, format string, args ...interface{}) error {
	return &DataIntegrityError{Source: source, Reason: fmt.Sprintf(format, args...)}
}
