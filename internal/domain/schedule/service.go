package schedule

import (
	"context"
	"fmt"
	"time"

	"campusleave/internal/domain/leave"
)

// Service answers substitute-availability questions. It backs both the
// wizard's advisory per-period checks and the authoritative re-check on
// submission.
type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// CheckAvailability implements leave.AvailabilityChecker. A substitute
// is unavailable when they are on leave themselves that day or already
// booked for any of the requested periods.
func (s *Service) CheckAvailability(ctx context.Context, facultyID string, date time.Time, periods []int) (leave.Availability, error) {
	date = leave.Day(date)

	onLeave, err := s.Store.OnLeave(ctx, facultyID, date)
	if err != nil {
		return leave.Availability{}, err
	}
	assigned, err := s.Store.AssignedPeriods(ctx, facultyID, date)
	if err != nil {
		return leave.Availability{}, err
	}
	return Decide(onLeave, assigned, date, periods), nil
}

// Decide applies the availability rules to already-fetched facts.
func Decide(onLeave bool, assigned []int, date time.Time, requested []int) leave.Availability {
	if onLeave {
		return leave.Availability{
			Message: fmt.Sprintf("faculty is on leave on %s", date.Format("2006-01-02")),
		}
	}
	taken := make(map[int]bool, len(assigned))
	for _, n := range assigned {
		taken[n] = true
	}
	for _, n := range requested {
		if taken[n] {
			return leave.Availability{
				Message: fmt.Sprintf("faculty is already covering period %d on %s", n, date.Format("2006-01-02")),
			}
		}
	}
	return leave.Availability{OK: true}
}
