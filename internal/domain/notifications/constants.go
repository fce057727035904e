package notifications

const (
	TypeLeaveSubmitted   = "leave_submitted"
	TypeLeaveForwarded   = "leave_forwarded"
	TypeLeaveApproved    = "leave_approved"
	TypeLeaveRejected    = "leave_rejected"
	TypeLeaveReminder    = "leave_reminder"
	TypeWorkDayRecorded  = "ccl_workday_recorded"
	TypeWorkDayForwarded = "ccl_workday_forwarded"
	TypeWorkDayDecided   = "ccl_workday_decided"
)
