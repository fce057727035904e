package wizard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"campusleave/internal/domain/leave"
)

// Step identifies where in the flow a draft is. Teaching staff move
// through both steps; everyone else submits from the details step.
type Step int

const (
	StepDetails Step = iota + 1
	StepSchedule
)

// Draft is one in-progress leave application. It lives in memory for
// the duration of a wizard session and is discarded on submission or
// cancel; it is never persisted.
type Draft struct {
	ID         string
	Employee   leave.EmployeeContext
	CCLBalance float64

	LeaveType   string
	IsHalfDay   bool
	Session     string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	ODTimeType  string
	ODStartTime string
	ODEndTime   string

	SelectedCCLDays []string
	Schedule        []leave.DaySchedule

	Step       Step
	CurrentDay int

	submitting bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDraft seeds a draft from the acting employee's identity.
func NewDraft(employee leave.EmployeeContext, cclBalance float64) *Draft {
	now := time.Now()
	return &Draft{
		ID:         uuid.NewString(),
		Employee:   employee,
		CCLBalance: cclBalance,
		Step:       StepDetails,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now()
}

// Teaching reports whether the draft owner provides an alternate schedule.
func (d *Draft) Teaching() bool {
	return d.Employee.Model == leave.ModelTeaching
}

// RequestedDays is the day count for the current selection.
func (d *Draft) RequestedDays() (float64, error) {
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return 0, leave.MissingField("startDate")
	}
	return leave.RequestDays(d.StartDate, d.EndDate, d.IsHalfDay)
}

// validateDetails checks everything the details step must supply before
// advancing or submitting, naming the first missing field.
func (d *Draft) validateDetails() error {
	policy, ok := leave.PolicyFor(d.LeaveType)
	if !ok {
		return leave.MissingField("leaveType")
	}
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return leave.MissingField("startDate")
	}
	if d.IsHalfDay && !leave.ValidSession(d.Session) {
		return leave.MissingField("session")
	}
	if strings.TrimSpace(d.Reason) == "" {
		return leave.MissingField("reason")
	}
	if policy.HasTimeOfDay {
		switch d.ODTimeType {
		case leave.ODTimeFull, leave.ODTimeHalf:
		case leave.ODTimeCustom:
			if strings.TrimSpace(d.ODStartTime) == "" || strings.TrimSpace(d.ODEndTime) == "" {
				return leave.ErrMissingTimeRange
			}
		default:
			return leave.MissingField("odTimeType")
		}
	}
	if policy.ConsumesWorkDays {
		days, err := d.RequestedDays()
		if err != nil {
			return err
		}
		if days > d.CCLBalance {
			return leave.ErrInsufficientBalance
		}
	}
	return nil
}
