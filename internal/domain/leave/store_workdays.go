package leave

import (
	"context"
	"time"
)

func (s *Store) InsertWorkDay(ctx context.Context, employeeID string, workDate time.Time, event string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO ccl_work_days (employee_id, work_date, event)
    VALUES ($1,$2,$3)
    RETURNING id
  `, employeeID, Day(workDate), event).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetWorkDay(ctx context.Context, workDayID string) (WorkDay, error) {
	var wd WorkDay
	var usedBy *string
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, event, status, used, used_by_request::text, created_at
    FROM ccl_work_days
    WHERE id = $1
  `, workDayID).Scan(&wd.ID, &wd.EmployeeID, &wd.WorkDate, &wd.Event, &wd.Status, &wd.Used, &usedBy, &wd.CreatedAt)
	if err != nil {
		return WorkDay{}, ErrNotFound
	}
	wd.UsedByRequest = deref(usedBy)
	return wd, nil
}

func (s *Store) ListWorkDays(ctx context.Context, employeeID string, onlyUsable bool) ([]WorkDay, error) {
	query := `
    SELECT id, employee_id, work_date, event, status, used, used_by_request::text, created_at
    FROM ccl_work_days
    WHERE employee_id = $1
  `
	args := []any{employeeID}
	if onlyUsable {
		query += " AND status = $2 AND NOT used"
		args = append(args, StatusApproved)
	}
	query += " ORDER BY work_date"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WorkDay
	for rows.Next() {
		var wd WorkDay
		var usedBy *string
		if err := rows.Scan(&wd.ID, &wd.EmployeeID, &wd.WorkDate, &wd.Event, &wd.Status, &wd.Used, &usedBy, &wd.CreatedAt); err != nil {
			return nil, err
		}
		wd.UsedByRequest = deref(usedBy)
		out = append(out, wd)
	}
	return out, nil
}

// UsableWorkDayCount counts how many of the given work-days belong to the
// employee and are approved and unused. The caller compares against
// len(ids) to detect stale or foreign selections.
func (s *Store) UsableWorkDayCount(ctx context.Context, employeeID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM ccl_work_days
    WHERE employee_id = $1 AND status = $2 AND NOT used AND id = ANY($3)
  `, employeeID, StatusApproved, ids).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CCLBalance is the number of approved, unused work-days; each is worth
// one day of compensatory leave.
func (s *Store) CCLBalance(ctx context.Context, employeeID string) (float64, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM ccl_work_days
    WHERE employee_id = $1 AND status = $2 AND NOT used
  `, employeeID, StatusApproved).Scan(&count)
	if err != nil {
		return 0, err
	}
	return float64(count), nil
}

// MarkWorkDaysUsed consumes every work-day linked to an approved request.
func (s *Store) MarkWorkDaysUsed(ctx context.Context, requestID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE ccl_work_days
    SET used = true, used_by_request = $1
    WHERE id IN (SELECT work_day_id FROM ccl_request_days WHERE request_id = $1)
  `, requestID)
	return err
}

func (s *Store) UpdateWorkDayStatus(ctx context.Context, workDayID, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE ccl_work_days SET status = $1 WHERE id = $2
  `, status, workDayID)
	return err
}
