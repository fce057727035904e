package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusleave/internal/domain/leave"
)

func teachingEmployee() leave.EmployeeContext {
	return leave.EmployeeContext{
		EmployeeID:   "emp-1",
		UserID:       "user-1",
		Name:         "Asha Verma",
		Model:        leave.ModelTeaching,
		CampusID:     "campus-1",
		DepartmentID: "dept-1",
	}
}

func nonTeachingEmployee() leave.EmployeeContext {
	ec := teachingEmployee()
	ec.Model = leave.ModelNonTeaching
	return ec
}

func upcoming(offsetDays int) time.Time {
	return leave.Day(time.Now()).AddDate(0, 0, offsetDays)
}

func readyDraft(t *testing.T, employee leave.EmployeeContext, kind string, rangeDays int) *Draft {
	t.Helper()
	d := NewDraft(employee, 10)
	if err := d.SelectLeaveType(kind); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetDateRange(upcoming(7), upcoming(7+rangeDays-1)); err != nil {
		t.Fatalf("SetDateRange: %v", err)
	}
	d.SetReason("family function")
	return d
}

func TestAdvanceStepBuildsOneDayPerDate(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCL, 3)
	if err := d.AdvanceStep(); err != nil {
		t.Fatalf("AdvanceStep: %v", err)
	}
	if d.Step != StepSchedule {
		t.Fatalf("step = %d, want schedule step", d.Step)
	}
	if len(d.Schedule) != 3 {
		t.Fatalf("schedule days = %d, want 3", len(d.Schedule))
	}
	if d.CurrentDay != 0 {
		t.Fatalf("cursor = %d, want 0", d.CurrentDay)
	}
	for i, day := range d.Schedule {
		want := upcoming(7 + i)
		if !day.Date.Equal(want) {
			t.Fatalf("day %d date = %v, want %v", i, day.Date, want)
		}
		if len(day.Periods) != 0 {
			t.Fatalf("day %d starts with %d periods, want 0", i, len(day.Periods))
		}
	}
}

func TestAdvanceStepRejectsNonTeaching(t *testing.T) {
	d := readyDraft(t, nonTeachingEmployee(), leave.KindCL, 2)
	if err := d.AdvanceStep(); !errors.Is(err, ErrNotTeaching) {
		t.Fatalf("AdvanceStep error = %v, want ErrNotTeaching", err)
	}
}

func TestAdvanceStepChecksCCLBalanceFirst(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCCL, 3)
	d.CCLBalance = 2

	err := d.AdvanceStep()
	if !errors.Is(err, leave.ErrInsufficientBalance) {
		t.Fatalf("AdvanceStep error = %v, want ErrInsufficientBalance", err)
	}
	if d.Step != StepDetails {
		t.Fatalf("draft advanced despite insufficient balance")
	}
	if len(d.Schedule) != 0 {
		t.Fatalf("day list built despite insufficient balance")
	}
}

func TestAdvanceStepRequiresReason(t *testing.T) {
	d := NewDraft(teachingEmployee(), 0)
	if err := d.SelectLeaveType(leave.KindCL); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetDateRange(upcoming(7), upcoming(8)); err != nil {
		t.Fatalf("SetDateRange: %v", err)
	}
	err := d.AdvanceStep()
	var verr *leave.ValidationError
	if !errors.As(err, &verr) || verr.Field != "reason" {
		t.Fatalf("AdvanceStep error = %v, want missing reason", err)
	}
}

func TestReAdvancePreservesDaysStillInRange(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCL, 3)
	if err := d.AdvanceStep(); err != nil {
		t.Fatalf("AdvanceStep: %v", err)
	}
	assignment := leave.PeriodAssignment{PeriodNumber: 2, SubstituteID: "emp-9", AssignedClass: "10-B"}
	if err := d.AddPeriod(0, assignment); err != nil {
		t.Fatalf("AddPeriod: %v", err)
	}
	if err := d.AddPeriod(2, leave.PeriodAssignment{PeriodNumber: 3, SubstituteID: "emp-8", AssignedClass: "9-A"}); err != nil {
		t.Fatalf("AddPeriod day 2: %v", err)
	}

	d.GoBack()
	if d.Step != StepDetails {
		t.Fatalf("GoBack left step = %d", d.Step)
	}
	// Shrink the range so the third day falls out.
	if err := d.SetDateRange(upcoming(7), upcoming(8)); err != nil {
		t.Fatalf("SetDateRange: %v", err)
	}
	if err := d.AdvanceStep(); err != nil {
		t.Fatalf("re-AdvanceStep: %v", err)
	}

	if len(d.Schedule) != 2 {
		t.Fatalf("schedule days = %d, want 2", len(d.Schedule))
	}
	if len(d.Schedule[0].Periods) != 1 || d.Schedule[0].Periods[0] != assignment {
		t.Fatalf("day 0 assignment not preserved: %+v", d.Schedule[0].Periods)
	}
	if len(d.Schedule[1].Periods) != 0 {
		t.Fatalf("day 1 unexpectedly has periods: %+v", d.Schedule[1].Periods)
	}
}

func TestSelectLeaveTypeResetsDownstreamState(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCCL, 2)
	if err := d.SelectCCLDays([]string{"wd-1", "wd-2"}); err != nil {
		t.Fatalf("SelectCCLDays: %v", err)
	}

	if err := d.SelectLeaveType(leave.KindOD); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if d.SelectedCCLDays != nil {
		t.Fatalf("selected work-days survived a type change: %v", d.SelectedCCLDays)
	}

	if err := d.SelectCCLDays([]string{"wd-1"}); err == nil {
		t.Fatalf("SelectCCLDays allowed for a non-CCL draft")
	}
}

func TestSelectLeaveTypeLockedInScheduleStep(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCL, 1)
	if err := d.AdvanceStep(); err != nil {
		t.Fatalf("AdvanceStep: %v", err)
	}
	if err := d.SelectLeaveType(leave.KindOD); !errors.Is(err, ErrLeaveTypeLocked) {
		t.Fatalf("SelectLeaveType error = %v, want ErrLeaveTypeLocked", err)
	}
}

func TestSetHalfDaySnapsEndDate(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCL, 3)
	if err := d.SetHalfDay(true, leave.SessionMorning); err != nil {
		t.Fatalf("SetHalfDay: %v", err)
	}
	if !d.EndDate.Equal(d.StartDate) {
		t.Fatalf("end date %v did not snap to start %v", d.EndDate, d.StartDate)
	}
	days, err := d.RequestedDays()
	if err != nil {
		t.Fatalf("RequestedDays: %v", err)
	}
	if days != 0.5 {
		t.Fatalf("half-day count = %v, want 0.5", days)
	}
}

func TestSetHalfDayRejectsODAndBadSession(t *testing.T) {
	d := NewDraft(teachingEmployee(), 0)
	if err := d.SelectLeaveType(leave.KindOD); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetHalfDay(true, leave.SessionMorning); !errors.Is(err, leave.ErrHalfDayNotAllowed) {
		t.Fatalf("SetHalfDay error = %v, want ErrHalfDayNotAllowed", err)
	}

	if err := d.SelectLeaveType(leave.KindCL); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetHalfDay(true, "evening"); !errors.Is(err, leave.ErrUnknownSession) {
		t.Fatalf("SetHalfDay error = %v, want ErrUnknownSession", err)
	}
}

func TestSetDateRangeValidatesWindow(t *testing.T) {
	d := NewDraft(teachingEmployee(), 0)
	if err := d.SelectLeaveType(leave.KindCL); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetDateRange(upcoming(-40), upcoming(-39)); !errors.Is(err, leave.ErrStartTooEarly) {
		t.Fatalf("SetDateRange error = %v, want ErrStartTooEarly", err)
	}
	if err := d.SetDateRange(upcoming(5), upcoming(3)); !errors.Is(err, leave.ErrEndBeforeStart) {
		t.Fatalf("SetDateRange error = %v, want ErrEndBeforeStart", err)
	}
}

func TestCanSubmitNonTeachingFromDetailsStep(t *testing.T) {
	d := readyDraft(t, nonTeachingEmployee(), leave.KindCL, 2)
	if !d.CanSubmit() {
		t.Fatalf("complete non-teaching draft cannot submit")
	}
	d.Reason = ""
	if d.CanSubmit() {
		t.Fatalf("draft without reason can submit")
	}
}

func TestCanSubmitTeachingNeedsLastDayFilled(t *testing.T) {
	d := readyDraft(t, teachingEmployee(), leave.KindCL, 2)
	if d.CanSubmit() {
		t.Fatalf("teaching draft can submit before the schedule step")
	}
	if err := d.AdvanceStep(); err != nil {
		t.Fatalf("AdvanceStep: %v", err)
	}
	if d.CanSubmit() {
		t.Fatalf("can submit from day 0 of 2")
	}
	if err := d.AddPeriod(0, leave.PeriodAssignment{PeriodNumber: 1, SubstituteID: "emp-9", AssignedClass: "8-C"}); err != nil {
		t.Fatalf("AddPeriod: %v", err)
	}
	if err := d.NextDay(context.Background(), allowAllChecker{}); err != nil {
		t.Fatalf("NextDay: %v", err)
	}
	if d.CanSubmit() {
		t.Fatalf("can submit with an empty last day")
	}
	if err := d.AddPeriod(1, leave.PeriodAssignment{PeriodNumber: 2, SubstituteID: "emp-9", AssignedClass: "8-C"}); err != nil {
		t.Fatalf("AddPeriod: %v", err)
	}
	if !d.CanSubmit() {
		t.Fatalf("complete schedule cannot submit")
	}
}

func TestSetODTime(t *testing.T) {
	d := NewDraft(teachingEmployee(), 0)
	if err := d.SelectLeaveType(leave.KindOD); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetODTime(leave.ODTimeCustom, "09:00", "13:30"); err != nil {
		t.Fatalf("SetODTime: %v", err)
	}
	if d.ODStartTime != "09:00" || d.ODEndTime != "13:30" {
		t.Fatalf("custom times not recorded: %q %q", d.ODStartTime, d.ODEndTime)
	}
	// Switching to a preset clears the custom range.
	if err := d.SetODTime(leave.ODTimeFull, "09:00", "13:30"); err != nil {
		t.Fatalf("SetODTime full: %v", err)
	}
	if d.ODStartTime != "" || d.ODEndTime != "" {
		t.Fatalf("preset kept custom times: %q %q", d.ODStartTime, d.ODEndTime)
	}

	if err := d.SelectLeaveType(leave.KindCL); err != nil {
		t.Fatalf("SelectLeaveType: %v", err)
	}
	if err := d.SetODTime(leave.ODTimeFull, "", ""); err == nil {
		t.Fatalf("SetODTime allowed on a non-OD draft")
	}
}
