package wizard

import (
	"campusleave/internal/domain/leave"
)

// BuildPayload shapes the draft into the submission payload. The day
// count is always recomputed from the dates; per-kind fields appear
// only when the kind calls for them, and non-teaching drafts always
// carry an empty alternate schedule regardless of draft contents.
func (d *Draft) BuildPayload() (leave.SubmissionInput, error) {
	if err := d.validateDetails(); err != nil {
		return leave.SubmissionInput{}, err
	}
	policy, _ := leave.PolicyFor(d.LeaveType)

	days, err := d.RequestedDays()
	if err != nil {
		return leave.SubmissionInput{}, err
	}

	in := leave.SubmissionInput{
		EmployeeID:        d.Employee.EmployeeID,
		KindCode:          d.LeaveType,
		IsHalfDay:         d.IsHalfDay,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		NumberOfDays:      days,
		Reason:            d.Reason,
		AlternateSchedule: []leave.DaySchedule{},
	}
	if d.IsHalfDay {
		in.Session = d.Session
	}

	if d.Teaching() {
		for _, day := range d.Schedule {
			if len(day.Periods) == 0 {
				return leave.SubmissionInput{}, &EmptyDayError{DayIndex: len(in.AlternateSchedule)}
			}
			in.AlternateSchedule = append(in.AlternateSchedule, day)
		}
	}

	if policy.ConsumesWorkDays {
		in.SelectedCCLDays = d.SelectedCCLDays
	}
	if policy.HasTimeOfDay {
		in.ODTimeType = d.ODTimeType
		in.ODStartTime = d.ODStartTime
		in.ODEndTime = d.ODEndTime
	}
	return in, nil
}
