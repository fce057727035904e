package schedule

import (
	"strings"
	"testing"
	"time"
)

var checkDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func TestDecideAvailable(t *testing.T) {
	got := Decide(false, []int{1, 2}, checkDate, []int{3, 4})
	if !got.OK {
		t.Fatalf("free periods declined: %+v", got)
	}
}

func TestDecideOnLeave(t *testing.T) {
	got := Decide(true, nil, checkDate, []int{1})
	if got.OK {
		t.Fatalf("faculty on leave reported available")
	}
	if !strings.Contains(got.Message, "on leave") || !strings.Contains(got.Message, "2026-09-14") {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestDecideClashingPeriod(t *testing.T) {
	got := Decide(false, []int{2, 5}, checkDate, []int{4, 5})
	if got.OK {
		t.Fatalf("clashing period reported available")
	}
	if !strings.Contains(got.Message, "period 5") {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestDecideNoAssignments(t *testing.T) {
	got := Decide(false, nil, checkDate, []int{1, 2, 3})
	if !got.OK {
		t.Fatalf("unbooked faculty declined: %+v", got)
	}
}
