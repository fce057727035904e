package leave

import (
	"context"
	"strings"
	"time"
)

// Availability is the outcome of a substitute-availability check.
type Availability struct {
	OK      bool
	Message string
}

// AvailabilityChecker verifies a substitute can cover the given periods
// on a date. The wizard uses it as an advisory gate; the submission path
// here re-verifies regardless, which is the authoritative check.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, facultyID string, date time.Time, periods []int) (Availability, error)
}

type Service struct {
	Store        *Store
	Availability AvailabilityChecker
}

func NewService(store *Store, availability AvailabilityChecker) *Service {
	return &Service{Store: store, Availability: availability}
}

// SubmissionInput is the submission payload shape. NumberOfDays is
// accepted for wire compatibility but always recomputed.
type SubmissionInput struct {
	EmployeeID        string        `json:"employeeId"`
	KindCode          string        `json:"leaveType"`
	IsHalfDay         bool          `json:"isHalfDay"`
	Session           string        `json:"session,omitempty"`
	StartDate         time.Time     `json:"startDate"`
	EndDate           time.Time     `json:"endDate"`
	NumberOfDays      float64       `json:"numberOfDays"`
	Reason            string        `json:"reason"`
	AlternateSchedule []DaySchedule `json:"alternateSchedule"`
	SelectedCCLDays   []string      `json:"selectedCCLDays,omitempty"`
	ODTimeType        string        `json:"odTimeType,omitempty"`
	ODStartTime       string        `json:"odStartTime,omitempty"`
	ODEndTime         string        `json:"odEndTime,omitempty"`
}

type CreateResult struct {
	ID        string
	Status    string
	HODUserID string
	OwnerName string
}

// CreateRequest persists a submitted application after re-validating
// everything the client-side wizard validated. The client checks are
// advisory; nothing submitted is trusted.
func (s *Service) CreateRequest(ctx context.Context, in SubmissionInput) (CreateResult, error) {
	policy, ok := PolicyFor(in.KindCode)
	if !ok {
		return CreateResult{}, ErrUnknownKind
	}
	if strings.TrimSpace(in.Reason) == "" {
		return CreateResult{}, MissingField("reason")
	}

	emp, err := s.Store.EmployeeContext(ctx, in.EmployeeID)
	if err != nil {
		return CreateResult{}, err
	}

	if err := ValidateWindow(in.StartDate, in.EndDate, time.Now()); err != nil {
		return CreateResult{}, err
	}
	if in.IsHalfDay {
		if !policy.AllowsHalfDay {
			return CreateResult{}, ErrHalfDayNotAllowed
		}
		if !ValidSession(in.Session) {
			return CreateResult{}, MissingField("session")
		}
	}

	days, err := RequestDays(in.StartDate, in.EndDate, in.IsHalfDay)
	if err != nil {
		return CreateResult{}, err
	}

	if policy.HasTimeOfDay {
		switch in.ODTimeType {
		case ODTimeFull, ODTimeHalf:
		case ODTimeCustom:
			if strings.TrimSpace(in.ODStartTime) == "" || strings.TrimSpace(in.ODEndTime) == "" {
				return CreateResult{}, ErrMissingTimeRange
			}
		default:
			return CreateResult{}, MissingField("odTimeType")
		}
	}

	var selectedDays []string
	if policy.ConsumesWorkDays {
		balance, err := s.Store.CCLBalance(ctx, emp.EmployeeID)
		if err != nil {
			return CreateResult{}, err
		}
		if days > balance {
			return CreateResult{}, ErrInsufficientBalance
		}
		usable, err := s.Store.UsableWorkDayCount(ctx, emp.EmployeeID, in.SelectedCCLDays)
		if err != nil {
			return CreateResult{}, err
		}
		if usable != len(in.SelectedCCLDays) {
			return CreateResult{}, ErrWorkDayNotUsable
		}
		selectedDays = in.SelectedCCLDays
	}

	schedule, err := s.validateSchedule(ctx, emp, in)
	if err != nil {
		return CreateResult{}, err
	}

	request := &Request{
		EmployeeID:        emp.EmployeeID,
		CampusID:          emp.CampusID,
		DepartmentID:      emp.DepartmentID,
		KindCode:          in.KindCode,
		IsHalfDay:         in.IsHalfDay,
		Session:           in.Session,
		StartDate:         Day(in.StartDate),
		EndDate:           Day(in.EndDate),
		NumberOfDays:      days,
		Reason:            in.Reason,
		ODTimeType:        odFieldFor(policy, in.ODTimeType),
		ODStartTime:       odFieldFor(policy, in.ODStartTime),
		ODEndTime:         odFieldFor(policy, in.ODEndTime),
		Status:            StatusPending,
		AlternateSchedule: schedule,
		SelectedCCLDays:   selectedDays,
	}

	id, err := s.Store.InsertRequest(ctx, request)
	if err != nil {
		return CreateResult{}, err
	}

	result := CreateResult{ID: id, Status: StatusPending, OwnerName: emp.Name}
	if emp.DepartmentID != "" {
		if hodUser, err := s.Store.DepartmentHODUser(ctx, emp.DepartmentID); err == nil {
			result.HODUserID = hodUser
		}
	}
	return result, nil
}

// validateSchedule enforces the alternate-schedule invariants for
// teaching staff and strips any schedule sent by anyone else.
func (s *Service) validateSchedule(ctx context.Context, emp EmployeeContext, in SubmissionInput) ([]DaySchedule, error) {
	if emp.Model != ModelTeaching {
		return []DaySchedule{}, nil
	}

	wantDays, err := EnumerateDays(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if len(in.AlternateSchedule) != len(wantDays) {
		return nil, &ValidationError{Field: "alternateSchedule", Reason: "must cover every day in the range"}
	}

	allowed, err := PeriodsForSession(in.IsHalfDay, in.Session)
	if err != nil {
		return nil, err
	}
	allowedSet := map[int]bool{}
	for _, p := range allowed {
		allowedSet[p] = true
	}

	schedule := make([]DaySchedule, 0, len(wantDays))
	for i, day := range in.AlternateSchedule {
		date := Day(day.Date)
		if !date.Equal(wantDays[i]) {
			return nil, &ValidationError{Field: "alternateSchedule", Reason: "days must match the requested range in order"}
		}
		if len(day.Periods) == 0 {
			return nil, &ValidationError{Field: "alternateSchedule", Reason: "every day needs at least one assigned period"}
		}
		seen := map[int]bool{}
		periods := make([]PeriodAssignment, 0, len(day.Periods))
		for _, period := range day.Periods {
			if !allowedSet[period.PeriodNumber] {
				return nil, &ValidationError{Field: "periodNumber", Reason: "outside the selectable session periods"}
			}
			if seen[period.PeriodNumber] {
				return nil, &ValidationError{Field: "periodNumber", Reason: "assigned twice on the same day"}
			}
			if period.SubstituteID == "" || strings.TrimSpace(period.AssignedClass) == "" {
				return nil, &ValidationError{Field: "alternateSchedule", Reason: "period, substitute and class are all required"}
			}
			seen[period.PeriodNumber] = true
			periods = append(periods, period)
		}

		// Authoritative availability re-check, one substitute at a time.
		byFaculty := map[string][]int{}
		for _, period := range periods {
			byFaculty[period.SubstituteID] = append(byFaculty[period.SubstituteID], period.PeriodNumber)
		}
		for facultyID, facultyPeriods := range byFaculty {
			check, err := s.Availability.CheckAvailability(ctx, facultyID, date, facultyPeriods)
			if err != nil {
				return nil, err
			}
			if !check.OK {
				return nil, &AvailabilityError{FacultyID: facultyID, Date: date, Message: check.Message}
			}
		}

		schedule = append(schedule, DaySchedule{Date: date, Periods: periods})
	}
	return schedule, nil
}

func odFieldFor(policy KindPolicy, value string) string {
	if !policy.HasTimeOfDay {
		return ""
	}
	return value
}

type TransitionResult struct {
	RequestID    string
	Status       string
	KindCode     string
	EmployeeID   string
	OwnerUserID  string
	ApprovedDays *float64
}

// Transition applies a reviewer decision through the workflow table.
func (s *Service) Transition(ctx context.Context, requestID, actorUserID, actorRole string, d Decision) (TransitionResult, error) {
	request, err := s.Store.GetRequest(ctx, requestID)
	if err != nil {
		return TransitionResult{}, err
	}

	next, err := NextStatus(request.Status, d.Action, actorRole, request.EmployeeModel)
	if err != nil {
		return TransitionResult{}, err
	}

	overrideDays, err := ValidateDecision(d, request.StartDate, request.EndDate)
	if err != nil {
		return TransitionResult{}, err
	}

	var approvedDays *float64
	effectiveDays := request.NumberOfDays
	if overrideDays > 0 {
		approvedDays = &overrideDays
		effectiveDays = overrideDays
	}

	terminal := IsTerminal(next)
	if err := s.Store.ApplyDecision(ctx, requestID, next, d, approvedDays, actorUserID, terminal); err != nil {
		return TransitionResult{}, err
	}

	if next == StatusApproved {
		if err := s.Store.DebitBalance(ctx, request.EmployeeID, request.KindCode, effectiveDays); err != nil {
			return TransitionResult{}, err
		}
		if request.KindCode == KindCCL {
			if err := s.Store.MarkWorkDaysUsed(ctx, requestID); err != nil {
				return TransitionResult{}, err
			}
		}
	}

	emp, err := s.Store.EmployeeContext(ctx, request.EmployeeID)
	if err != nil {
		return TransitionResult{}, err
	}
	return TransitionResult{
		RequestID:    requestID,
		Status:       next,
		KindCode:     request.KindCode,
		EmployeeID:   request.EmployeeID,
		OwnerUserID:  emp.UserID,
		ApprovedDays: approvedDays,
	}, nil
}

// RecordWorkDay registers a compensatory work-day for an employee.
func (s *Service) RecordWorkDay(ctx context.Context, employeeID string, workDate time.Time, event string) (string, error) {
	if _, err := s.Store.EmployeeContext(ctx, employeeID); err != nil {
		return "", err
	}
	return s.Store.InsertWorkDay(ctx, employeeID, workDate, event)
}

// TransitionWorkDay moves a work-day record through its shorter chain.
func (s *Service) TransitionWorkDay(ctx context.Context, workDayID, actorRole, action, remarks string) (WorkDay, error) {
	workDay, err := s.Store.GetWorkDay(ctx, workDayID)
	if err != nil {
		return WorkDay{}, err
	}
	if action == ActionReject && strings.TrimSpace(remarks) == "" {
		return WorkDay{}, ErrRemarksRequired
	}
	next, err := WorkDayNextStatus(workDay.Status, action, actorRole)
	if err != nil {
		return WorkDay{}, err
	}
	if err := s.Store.UpdateWorkDayStatus(ctx, workDayID, next); err != nil {
		return WorkDay{}, err
	}
	workDay.Status = next
	return workDay, nil
}

func (s *Service) ListWorkDays(ctx context.Context, employeeID string, onlyUsable bool) ([]WorkDay, error) {
	return s.Store.ListWorkDays(ctx, employeeID, onlyUsable)
}

func (s *Service) CCLBalance(ctx context.Context, employeeID string) (float64, error) {
	return s.Store.CCLBalance(ctx, employeeID)
}

func (s *Service) ListBalances(ctx context.Context, employeeID string) ([]Balance, error) {
	return s.Store.ListBalances(ctx, employeeID)
}

func (s *Service) AdjustBalance(ctx context.Context, employeeID, kindCode string, amount float64) error {
	if _, ok := PolicyFor(kindCode); !ok {
		return ErrUnknownKind
	}
	return s.Store.AdjustBalance(ctx, employeeID, kindCode, amount)
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (Request, error) {
	return s.Store.GetRequest(ctx, requestID)
}

func (s *Service) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, int, error) {
	return s.Store.ListRequests(ctx, filter)
}
