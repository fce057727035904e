package leave

import (
	"errors"
	"strings"
	"time"

	"campusleave/internal/domain/auth"
)

var (
	ErrInvalidTransition          = errors.New("transition not allowed from current status")
	ErrRemarksRequired            = errors.New("remarks are required to reject")
	ErrModificationReasonRequired = errors.New("modification reason required when approved dates differ")
)

// Decision is a reviewer's verdict on a request. ApprovedStart/End are an
// optional date override; when they differ from the requested range a
// modification reason becomes mandatory.
type Decision struct {
	Action             string
	Remarks            string
	ApprovedStart      *time.Time
	ApprovedEnd        *time.Time
	ModificationReason string
}

type transitionKey struct {
	status string
	action string
	role   string
}

// requestTransitions is the full transition table for leave requests.
// A HOD forward routes by employee model (see NextStatus); everything
// else is a straight lookup. Terminal statuses have no entries.
var requestTransitions = map[transitionKey]string{
	{StatusPending, ActionReject, auth.RoleHOD}:         StatusRejected,
	{StatusPending, ActionReject, auth.RoleSuperAdmin}:  StatusRejected,
	{StatusPending, ActionApprove, auth.RoleSuperAdmin}: StatusApproved,

	{StatusForwardedByHOD, ActionApprove, auth.RolePrincipal}:  StatusApproved,
	{StatusForwardedByHOD, ActionReject, auth.RolePrincipal}:   StatusRejected,
	{StatusForwardedByHOD, ActionApprove, auth.RoleSuperAdmin}: StatusApproved,
	{StatusForwardedByHOD, ActionReject, auth.RoleSuperAdmin}:  StatusRejected,
	{StatusForwardedByHOD, ActionForward, auth.RoleHR}:         StatusForwardedToPrincipal,
	{StatusForwardedByHOD, ActionForward, auth.RoleSuperAdmin}: StatusForwardedToPrincipal,

	{StatusForwardedToPrincipal, ActionApprove, auth.RolePrincipal}:  StatusApproved,
	{StatusForwardedToPrincipal, ActionReject, auth.RolePrincipal}:   StatusRejected,
	{StatusForwardedToPrincipal, ActionApprove, auth.RoleSuperAdmin}: StatusApproved,
	{StatusForwardedToPrincipal, ActionReject, auth.RoleSuperAdmin}:  StatusRejected,

	{StatusForwardedToHR, ActionApprove, auth.RoleHR}:         StatusApproved,
	{StatusForwardedToHR, ActionReject, auth.RoleHR}:          StatusRejected,
	{StatusForwardedToHR, ActionApprove, auth.RoleSuperAdmin}: StatusApproved,
	{StatusForwardedToHR, ActionReject, auth.RoleSuperAdmin}:  StatusRejected,
}

// NextStatus resolves the status a request moves to when role performs
// action, or ErrInvalidTransition. A pending request forwarded by the
// HOD (or superadmin) routes to the principal track for teaching staff
// and straight to HR otherwise; non-teaching requests never pass
// through forwarded_by_hod, their chain is pending -> forwarded_to_hr
// -> approved | rejected.
func NextStatus(current, action, role, employeeModel string) (string, error) {
	if IsTerminal(current) {
		return "", ErrInvalidTransition
	}
	if current == StatusPending && action == ActionForward &&
		(role == auth.RoleHOD || role == auth.RoleSuperAdmin) {
		if employeeModel == ModelTeaching {
			return StatusForwardedByHOD, nil
		}
		return StatusForwardedToHR, nil
	}
	next, ok := requestTransitions[transitionKey{current, action, role}]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}

// IsTerminal reports whether no further transition is defined.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// ValidateDecision checks remarks and the date-override rules against
// the requested range. It returns the recomputed day count when the
// override actually changes the dates, and zero otherwise. Dates that
// merely echo the requested range count as no override, so the request
// keeps its own day count (a half-day stays 0.5 instead of being
// recomputed to a full day).
func ValidateDecision(d Decision, requestedStart, requestedEnd time.Time) (float64, error) {
	if d.Action == ActionReject && strings.TrimSpace(d.Remarks) == "" {
		return 0, ErrRemarksRequired
	}
	if d.ApprovedStart == nil && d.ApprovedEnd == nil {
		return 0, nil
	}

	start, end := Day(requestedStart), Day(requestedEnd)
	if d.ApprovedStart != nil {
		start = Day(*d.ApprovedStart)
	}
	if d.ApprovedEnd != nil {
		end = Day(*d.ApprovedEnd)
	}
	if start.Equal(Day(requestedStart)) && end.Equal(Day(requestedEnd)) {
		return 0, nil
	}
	if strings.TrimSpace(d.ModificationReason) == "" {
		return 0, ErrModificationReasonRequired
	}
	return DaysBetween(start, end)
}

// workDayTransitions is the shorter chain for CCL work-day consumption
// requests: pending -> forwarded to principal -> approved | rejected.
var workDayTransitions = map[transitionKey]string{
	{StatusPending, ActionForward, auth.RoleHOD}:        StatusForwardedToPrincipal,
	{StatusPending, ActionForward, auth.RoleSuperAdmin}: StatusForwardedToPrincipal,
	{StatusPending, ActionReject, auth.RoleHOD}:         StatusRejected,
	{StatusPending, ActionReject, auth.RoleSuperAdmin}:  StatusRejected,

	{StatusForwardedToPrincipal, ActionApprove, auth.RolePrincipal}:  StatusApproved,
	{StatusForwardedToPrincipal, ActionReject, auth.RolePrincipal}:   StatusRejected,
	{StatusForwardedToPrincipal, ActionApprove, auth.RoleSuperAdmin}: StatusApproved,
	{StatusForwardedToPrincipal, ActionReject, auth.RoleSuperAdmin}:  StatusRejected,
}

// WorkDayNextStatus resolves transitions for CCL work-day records.
func WorkDayNextStatus(current, action, role string) (string, error) {
	if IsTerminal(current) {
		return "", ErrInvalidTransition
	}
	next, ok := workDayTransitions[transitionKey{current, action, role}]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}
