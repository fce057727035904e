package leave

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	days, err := DaysBetween(date(2024, 1, 10), date(2024, 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	days, err = DaysBetween(date(2024, 1, 10), date(2024, 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestDaysBetweenInvalid(t *testing.T) {
	if _, err := DaysBetween(date(2024, 2, 10), date(2024, 2, 9)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestRequestDaysHalfDay(t *testing.T) {
	days, err := RequestDays(date(2024, 3, 5), date(2024, 3, 5), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 0.5 {
		t.Fatalf("expected 0.5 days, got %v", days)
	}

	if _, err := RequestDays(date(2024, 3, 5), date(2024, 3, 6), true); err != ErrHalfDayMultiDay {
		t.Fatalf("expected ErrHalfDayMultiDay, got %v", err)
	}
}

func TestValidateWindow(t *testing.T) {
	today := date(2024, 6, 1)

	if err := ValidateWindow(date(2024, 6, 3), date(2024, 6, 5), today); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// exactly 35 days back is still allowed
	if err := ValidateWindow(date(2024, 4, 27), date(2024, 4, 27), today); err != nil {
		t.Fatalf("unexpected error at window edge: %v", err)
	}
	if err := ValidateWindow(date(2024, 4, 26), date(2024, 4, 26), today); err != ErrStartTooEarly {
		t.Fatalf("expected ErrStartTooEarly, got %v", err)
	}
	if err := ValidateWindow(date(2024, 6, 3), date(2025, 6, 4), today); err != ErrRangeTooLong {
		t.Fatalf("expected ErrRangeTooLong, got %v", err)
	}
	if err := ValidateWindow(date(2024, 6, 5), date(2024, 6, 3), today); err != ErrEndBeforeStart {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestEnumerateDays(t *testing.T) {
	days, err := EnumerateDays(date(2024, 1, 10), date(2024, 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	want := []time.Time{date(2024, 1, 10), date(2024, 1, 11), date(2024, 1, 12)}
	for i, day := range days {
		if !day.Equal(want[i]) {
			t.Fatalf("day %d: expected %v, got %v", i, want[i], day)
		}
	}
}

func TestEnumerateDaysCrossesMonth(t *testing.T) {
	days, err := EnumerateDays(date(2024, 1, 30), date(2024, 2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
}

func TestPeriodsForSession(t *testing.T) {
	full, err := PeriodsForSession(false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(full) != 7 || full[0] != 1 || full[6] != 7 {
		t.Fatalf("expected periods 1..7, got %v", full)
	}

	morning, err := PeriodsForSession(true, SessionMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(morning) != 4 || morning[3] != 4 {
		t.Fatalf("expected periods 1..4 for morning, got %v", morning)
	}

	afternoon, err := PeriodsForSession(true, SessionAfternoon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(afternoon) != 3 || afternoon[0] != 5 {
		t.Fatalf("expected periods 5..7 for afternoon, got %v", afternoon)
	}

	if _, err := PeriodsForSession(true, "evening"); err != ErrUnknownSession {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}
