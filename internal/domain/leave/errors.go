package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownKind         = errors.New("unknown leave type")
	ErrHalfDayNotAllowed   = errors.New("leave type does not allow half-day")
	ErrInsufficientBalance = errors.New("insufficient compensatory leave balance")
	ErrMissingTimeRange    = errors.New("custom on-duty time requires start and end times")
	ErrWorkDayNotUsable    = errors.New("selected work-day is not approved and unused")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
)

// ValidationError names the field that blocked an operation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// AvailabilityError is a declined substitute-availability check; the
// message travels back to the requester verbatim.
type AvailabilityError struct {
	FacultyID string
	Date      time.Time
	Message   string
}

func (e *AvailabilityError) Error() string {
	return e.Message
}
