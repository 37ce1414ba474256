package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBaselineAssignments means discovery found zero baseline-relevant
	// policy assignments in the selected scopes.
	ErrNoBaselineAssignments = errors.New("no baseline policy assignments found")
	// ErrQuotaExceeded means the projected exemption count is unsafe and the
	// creation run must not start.
	ErrQuotaExceeded = errors.New("projected exemption count exceeds the safety threshold")
	// ErrAssignmentNotFound means a requested assignment name matched nothing.
	ErrAssignmentNotFound = errors.New("requested policy assignment not found")
)

// ValidationError reports conflicting or missing command input. It is fatal
// and raised before any query runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
