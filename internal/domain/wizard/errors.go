package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrNotTeaching     = errors.New("schedule step is only for teaching staff")
	ErrLeaveTypeLocked = errors.New("leave type cannot change once the schedule step begins")
	ErrNoSuchDay       = errors.New("day index out of range")
	ErrAlreadyLastDay  = errors.New("already on the last day")
	ErrSubmitInFlight  = errors.New("a submission is already in flight")
	ErrNoDraft         = errors.New("no active draft")
)

// DuplicatePeriodError blocks assigning the same period twice in a day.
type DuplicatePeriodError struct {
	PeriodNumber int
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("period %d is already assigned on this day", e.PeriodNumber)
}

// IncompleteFieldsError blocks adding a period with missing fields.
type IncompleteFieldsError struct {
	Missing []string
}

func (e *IncompleteFieldsError) Error() string {
	return fmt.Sprintf("period assignment incomplete: missing %v", e.Missing)
}

// EmptyDayError blocks leaving a day with no assigned periods.
type EmptyDayError struct {
	DayIndex int
}

func (e *EmptyDayError) Error() string {
	return fmt.Sprintf("day %d has no assigned periods", e.DayIndex+1)
}

// PeriodNotSelectableError blocks periods outside the session's range.
type PeriodNotSelectableError struct {
	PeriodNumber int
}

func (e *PeriodNotSelectableError) Error() string {
	return fmt.Sprintf("period %d is not selectable for this request", e.PeriodNumber)
}
