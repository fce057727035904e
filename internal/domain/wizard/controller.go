package wizard

import (
	"strings"
	"time"

	"campusleave/internal/domain/leave"
)

// SelectLeaveType sets the kind for the draft. Changing it resets every
// downstream choice that depends on the kind. Locked once the schedule
// step has begun.
func (d *Draft) SelectLeaveType(code string) error {
	if d.Step == StepSchedule {
		return ErrLeaveTypeLocked
	}
	policy, ok := leave.PolicyFor(code)
	if !ok {
		return leave.ErrUnknownKind
	}
	if code == d.LeaveType {
		return nil
	}
	d.LeaveType = code
	d.SelectedCCLDays = nil
	d.ODTimeType = ""
	d.ODStartTime = ""
	d.ODEndTime = ""
	if !policy.AllowsHalfDay {
		d.IsHalfDay = false
		d.Session = ""
	}
	d.Schedule = nil
	d.touch()
	return nil
}

// SetHalfDay toggles the half-day flag. A half-day request is a single
// day, so the end date snaps to the start date.
func (d *Draft) SetHalfDay(halfDay bool, session string) error {
	if halfDay {
		policy, ok := leave.PolicyFor(d.LeaveType)
		if !ok {
			return leave.MissingField("leaveType")
		}
		if !policy.AllowsHalfDay {
			return leave.ErrHalfDayNotAllowed
		}
		if !leave.ValidSession(session) {
			return leave.ErrUnknownSession
		}
		d.IsHalfDay = true
		d.Session = session
		if !d.StartDate.IsZero() {
			d.EndDate = d.StartDate
		}
	} else {
		d.IsHalfDay = false
		d.Session = ""
	}
	d.touch()
	return nil
}

// SetDateRange records the requested dates after window validation.
func (d *Draft) SetDateRange(start, end time.Time) error {
	start, end = leave.Day(start), leave.Day(end)
	if d.IsHalfDay {
		end = start
	}
	if err := leave.ValidateWindow(start, end, time.Now()); err != nil {
		return err
	}
	d.StartDate = start
	d.EndDate = end
	d.touch()
	return nil
}

func (d *Draft) SetReason(reason string) {
	d.Reason = strings.TrimSpace(reason)
	d.touch()
}

// SetODTime records the on-duty time selection.
func (d *Draft) SetODTime(timeType, startTime, endTime string) error {
	policy, ok := leave.PolicyFor(d.LeaveType)
	if !ok || !policy.HasTimeOfDay {
		return &leave.ValidationError{Field: "odTimeType", Reason: "not applicable for this leave type"}
	}
	switch timeType {
	case leave.ODTimeFull, leave.ODTimeHalf:
		startTime, endTime = "", ""
	case leave.ODTimeCustom:
	default:
		return leave.MissingField("odTimeType")
	}
	d.ODTimeType = timeType
	d.ODStartTime = startTime
	d.ODEndTime = endTime
	d.touch()
	return nil
}

// SelectCCLDays records which earned work-days the request consumes.
func (d *Draft) SelectCCLDays(workDayIDs []string) error {
	policy, ok := leave.PolicyFor(d.LeaveType)
	if !ok || !policy.ConsumesWorkDays {
		return &leave.ValidationError{Field: "selectedCCLDays", Reason: "not applicable for this leave type"}
	}
	d.SelectedCCLDays = append([]string(nil), workDayIDs...)
	d.touch()
	return nil
}

// AdvanceStep moves a teaching-staff draft into the schedule step. It
// validates the details step first, so an insufficient CCL balance or a
// missing field blocks before any day list is built. The day list is
// keyed by date: entries for dates still in the range survive a
// back-and-forth, entries for dropped dates are discarded.
func (d *Draft) AdvanceStep() error {
	if !d.Teaching() {
		return ErrNotTeaching
	}
	if err := d.validateDetails(); err != nil {
		return err
	}
	days, err := leave.EnumerateDays(d.StartDate, d.EndDate)
	if err != nil {
		return err
	}

	existing := make(map[time.Time][]leave.PeriodAssignment, len(d.Schedule))
	for _, day := range d.Schedule {
		existing[leave.Day(day.Date)] = day.Periods
	}

	schedule := make([]leave.DaySchedule, 0, len(days))
	for _, date := range days {
		schedule = append(schedule, leave.DaySchedule{Date: date, Periods: existing[date]})
	}
	d.Schedule = schedule
	d.CurrentDay = 0
	d.Step = StepSchedule
	d.touch()
	return nil
}

// GoBack returns to the details step. Nothing is discarded; a later
// re-advance reconciles the day list against the (possibly changed)
// date range.
func (d *Draft) GoBack() {
	d.Step = StepDetails
	d.touch()
}

// CanSubmit reports whether the draft is ready for submission from its
// current position. Teaching staff submit from the last day of the
// schedule step; everyone else submits from the details step.
func (d *Draft) CanSubmit() bool {
	if d.Teaching() {
		if d.Step != StepSchedule || len(d.Schedule) == 0 {
			return false
		}
		if d.CurrentDay != len(d.Schedule)-1 {
			return false
		}
		return len(d.Schedule[d.CurrentDay].Periods) > 0
	}
	return d.validateDetails() == nil
}
