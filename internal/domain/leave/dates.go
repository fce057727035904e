package leave

import (
	"errors"
	"time"
)

const (
	// MaxBackdateDays bounds how far in the past a request may start.
	MaxBackdateDays = 35
	// MaxRangeDays bounds the inclusive length of a request.
	MaxRangeDays = 365
)

var (
	ErrEndBeforeStart  = errors.New("end date before start date")
	ErrStartTooEarly   = errors.New("start date is more than 35 days in the past")
	ErrRangeTooLong    = errors.New("date range exceeds 365 days")
	ErrHalfDayMultiDay = errors.New("half-day request must cover a single date")
	ErrUnknownSession  = errors.New("unknown session")
)

// Day truncates a timestamp to its calendar day in UTC. All request date
// math works on day-truncated values.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the inclusive day count between start and end.
func DaysBetween(start, end time.Time) (float64, error) {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return 0, ErrEndBeforeStart
	}
	return e.Sub(s).Hours()/24 + 1, nil
}

// RequestDays returns the day count for a request: 0.5 for a half-day,
// the inclusive count otherwise.
func RequestDays(start, end time.Time, halfDay bool) (float64, error) {
	if halfDay {
		if !Day(start).Equal(Day(end)) {
			return 0, ErrHalfDayMultiDay
		}
		return 0.5, nil
	}
	return DaysBetween(start, end)
}

// ValidateWindow enforces the request window relative to today:
// start >= today-35d, end <= start+365d, end >= start.
func ValidateWindow(start, end, today time.Time) error {
	s, e, now := Day(start), Day(end), Day(today)
	if e.Before(s) {
		return ErrEndBeforeStart
	}
	if s.Before(now.AddDate(0, 0, -MaxBackdateDays)) {
		return ErrStartTooEarly
	}
	if e.After(s.AddDate(0, 0, MaxRangeDays)) {
		return ErrRangeTooLong
	}
	return nil
}

// EnumerateDays lists every calendar day from start to end inclusive.
func EnumerateDays(start, end time.Time) ([]time.Time, error) {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return nil, ErrEndBeforeStart
	}
	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// PeriodsForSession returns the period numbers selectable for a day.
// Full days offer 1..7; a half-day restricts to the chosen session.
func PeriodsForSession(halfDay bool, session string) ([]int, error) {
	first, last := FirstPeriod, LastPeriod
	if halfDay {
		switch session {
		case SessionMorning:
			last = LastMorningSlot
		case SessionAfternoon:
			first = FirstAfternoonSlot
		default:
			return nil, ErrUnknownSession
		}
	}
	periods := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		periods = append(periods, p)
	}
	return periods, nil
}

// ValidSession reports whether the session value is one of the two halves.
func ValidSession(session string) bool {
	return session == SessionMorning || session == SessionAfternoon
}
