package leave

// Leave kinds.
const (
	KindCL  = "CL"
	KindCCL = "CCL"
	KindOD  = "OD"
)

// Half-day sessions.
const (
	SessionMorning   = "morning"
	SessionAfternoon = "afternoon"
)

// OD time-of-day choices.
const (
	ODTimeFull   = "full"
	ODTimeHalf   = "half"
	ODTimeCustom = "custom"
)

// Employee models. Only teaching staff provide an alternate schedule.
const (
	ModelTeaching    = "teaching"
	ModelNonTeaching = "non_teaching"
	ModelHR          = "hr"
)

// Request statuses. Approved and rejected are terminal.
const (
	StatusPending              = "pending"
	StatusForwardedByHOD       = "forwarded_by_hod"
	StatusForwardedToPrincipal = "forwarded_to_principal"
	StatusForwardedToHR        = "forwarded_to_hr"
	StatusApproved             = "approved"
	StatusRejected             = "rejected"
)

// Reviewer actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionForward = "forward"
)

// Class periods run 1..7; 1..4 are the morning session, 5..7 the afternoon.
const (
	FirstPeriod        = 1
	LastPeriod         = 7
	LastMorningSlot    = 4
	FirstAfternoonSlot = 5
)
