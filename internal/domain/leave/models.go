package leave

import "time"

// PeriodAssignment is one substitute-covered class period.
type PeriodAssignment struct {
	PeriodNumber   int    `json:"periodNumber"`
	SubstituteID   string `json:"substituteFaculty"`
	SubstituteName string `json:"substituteFacultyName,omitempty"`
	AssignedClass  string `json:"assignedClass"`
}

// DaySchedule is the alternate schedule for one calendar day of leave.
type DaySchedule struct {
	Date    time.Time          `json:"date"`
	Periods []PeriodAssignment `json:"periods"`
}

// Request is a persisted leave request.
type Request struct {
	ID                 string        `json:"id"`
	EmployeeID         string        `json:"employeeId"`
	EmployeeName       string        `json:"employeeName,omitempty"`
	EmployeeModel      string        `json:"employeeModel"`
	CampusID           string        `json:"campusId"`
	DepartmentID       string        `json:"departmentId,omitempty"`
	KindCode           string        `json:"leaveType"`
	IsHalfDay          bool          `json:"isHalfDay"`
	Session            string        `json:"session,omitempty"`
	StartDate          time.Time     `json:"startDate"`
	EndDate            time.Time     `json:"endDate"`
	NumberOfDays       float64       `json:"numberOfDays"`
	Reason             string        `json:"reason"`
	ODTimeType         string        `json:"odTimeType,omitempty"`
	ODStartTime        string        `json:"odStartTime,omitempty"`
	ODEndTime          string        `json:"odEndTime,omitempty"`
	Status             string        `json:"status"`
	Remarks            string        `json:"remarks,omitempty"`
	AlternateSchedule  []DaySchedule `json:"alternateSchedule"`
	SelectedCCLDays    []string      `json:"selectedCCLDays,omitempty"`
	ApprovedStartDate  *time.Time    `json:"approvedStartDate,omitempty"`
	ApprovedEndDate    *time.Time    `json:"approvedEndDate,omitempty"`
	ApprovedDays       *float64      `json:"approvedNumberOfDays,omitempty"`
	ModificationReason string        `json:"modificationReason,omitempty"`
	DecidedBy          string        `json:"decidedBy,omitempty"`
	DecidedAt          *time.Time    `json:"decidedAt,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// WorkDay is an earned compensatory work-day that CCL leave consumes.
type WorkDay struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	WorkDate      time.Time `json:"workDate"`
	Event         string    `json:"event"`
	Status        string    `json:"status"`
	Used          bool      `json:"used"`
	UsedByRequest string    `json:"usedByRequest,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Balance is the per-kind leave balance of an employee.
type Balance struct {
	EmployeeID string    `json:"employeeId"`
	KindCode   string    `json:"leaveType"`
	Balance    float64   `json:"balance"`
	Used       float64   `json:"used"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
