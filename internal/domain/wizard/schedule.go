package wizard

import (
	"context"
	"strings"

	"campusleave/internal/domain/leave"
)

// AvailablePeriods lists the periods still assignable on a day: the
// session's period set minus what is already taken.
func (d *Draft) AvailablePeriods(dayIndex int) ([]int, error) {
	day, err := d.day(dayIndex)
	if err != nil {
		return nil, err
	}
	allowed, err := leave.PeriodsForSession(d.IsHalfDay, d.Session)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(day.Periods))
	for _, p := range day.Periods {
		taken[p.PeriodNumber] = true
	}
	free := make([]int, 0, len(allowed))
	for _, p := range allowed {
		if !taken[p] {
			free = append(free, p)
		}
	}
	return free, nil
}

// AddPeriod assigns a substitute-covered period on a day.
func (d *Draft) AddPeriod(dayIndex int, p leave.PeriodAssignment) error {
	day, err := d.day(dayIndex)
	if err != nil {
		return err
	}

	var missing []string
	if p.PeriodNumber == 0 {
		missing = append(missing, "periodNumber")
	}
	if p.SubstituteID == "" {
		missing = append(missing, "substituteFaculty")
	}
	if strings.TrimSpace(p.AssignedClass) == "" {
		missing = append(missing, "assignedClass")
	}
	if len(missing) > 0 {
		return &IncompleteFieldsError{Missing: missing}
	}

	allowed, err := leave.PeriodsForSession(d.IsHalfDay, d.Session)
	if err != nil {
		return err
	}
	ok := false
	for _, n := range allowed {
		if n == p.PeriodNumber {
			ok = true
			break
		}
	}
	if !ok {
		return &PeriodNotSelectableError{PeriodNumber: p.PeriodNumber}
	}
	for _, existing := range day.Periods {
		if existing.PeriodNumber == p.PeriodNumber {
			return &DuplicatePeriodError{PeriodNumber: p.PeriodNumber}
		}
	}

	day.Periods = append(day.Periods, p)
	d.touch()
	return nil
}

// RemovePeriod drops an assigned period from a day.
func (d *Draft) RemovePeriod(dayIndex, periodNumber int) error {
	day, err := d.day(dayIndex)
	if err != nil {
		return err
	}
	for i, p := range day.Periods {
		if p.PeriodNumber == periodNumber {
			day.Periods = append(day.Periods[:i], day.Periods[i+1:]...)
			d.touch()
			return nil
		}
	}
	return &leave.ValidationError{Field: "periodNumber", Reason: "not assigned on this day"}
}

// NextDay advances the schedule cursor. The current day must have at
// least one period, and every assigned substitute is checked for
// availability, one period at a time, before moving on. A declined
// check blocks with the checker's message. The check here is advisory;
// the submission path re-verifies everything.
func (d *Draft) NextDay(ctx context.Context, checker leave.AvailabilityChecker) error {
	if d.Step != StepSchedule {
		return ErrNoSuchDay
	}
	if d.CurrentDay >= len(d.Schedule)-1 {
		return ErrAlreadyLastDay
	}
	day := &d.Schedule[d.CurrentDay]
	if len(day.Periods) == 0 {
		return &EmptyDayError{DayIndex: d.CurrentDay}
	}
	for _, p := range day.Periods {
		check, err := checker.CheckAvailability(ctx, p.SubstituteID, day.Date, []int{p.PeriodNumber})
		if err != nil {
			return err
		}
		if !check.OK {
			return &leave.AvailabilityError{FacultyID: p.SubstituteID, Date: day.Date, Message: check.Message}
		}
	}
	d.CurrentDay++
	d.touch()
	return nil
}

// PreviousDay moves the cursor back one day. Entered data stays.
func (d *Draft) PreviousDay() error {
	if d.Step != StepSchedule || d.CurrentDay == 0 {
		return ErrNoSuchDay
	}
	d.CurrentDay--
	d.touch()
	return nil
}

func (d *Draft) day(dayIndex int) (*leave.DaySchedule, error) {
	if d.Step != StepSchedule || dayIndex < 0 || dayIndex >= len(d.Schedule) {
		return nil, ErrNoSuchDay
	}
	return &d.Schedule[dayIndex], nil
}
