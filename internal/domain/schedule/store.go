package schedule

import (
	"context"
	"time"

	"campusleave/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// AssignedPeriods lists the periods a faculty member is already booked
// to cover on a date, across every request that is still alive.
func (s *Store) AssignedPeriods(ctx context.Context, facultyID string, date time.Time) ([]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pa.period_number
      FROM period_assignments pa
      JOIN alternate_schedules alt ON alt.id = pa.schedule_id
      JOIN leave_requests lr ON lr.id = alt.request_id
     WHERE pa.substitute_employee_id = $1
       AND alt.day_date = $2
       AND lr.status <> 'rejected'
     ORDER BY pa.period_number`, facultyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		periods = append(periods, n)
	}
	return periods, rows.Err()
}

// OnLeave reports whether the faculty member has their own leave
// request, pending or approved, covering the date.
func (s *Store) OnLeave(ctx context.Context, facultyID string, date time.Time) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT count(*)
      FROM leave_requests
     WHERE employee_id = $1
       AND status <> 'rejected'
       AND start_date <= $2 AND end_date >= $2`, facultyID, date).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
