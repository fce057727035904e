package leave

import (
	"context"
	"fmt"
	"time"
)

// EmployeeContext is what the submission path needs to know about the
// acting employee.
type EmployeeContext struct {
	EmployeeID   string
	UserID       string
	Name         string
	Model        string
	CampusID     string
	DepartmentID string
}

func (s *Store) EmployeeContext(ctx context.Context, employeeID string) (EmployeeContext, error) {
	var ec EmployeeContext
	err := s.DB.QueryRow(ctx, `
    SELECT e.id, COALESCE(e.user_id::text, ''), trim(e.first_name || ' ' || e.last_name),
           e.employee_model, e.campus_id, COALESCE(e.department_id::text, '')
    FROM employees e
    WHERE e.id = $1 AND e.status = 'active'
  `, employeeID).Scan(&ec.EmployeeID, &ec.UserID, &ec.Name, &ec.Model, &ec.CampusID, &ec.DepartmentID)
	if err != nil {
		return EmployeeContext{}, ErrNotFound
	}
	return ec, nil
}

// EmployeeIDByUser resolves the employee record behind a login.
func (s *Store) EmployeeIDByUser(ctx context.Context, userID string) (string, error) {
	var employeeID string
	err := s.DB.QueryRow(ctx, `
    SELECT id FROM employees WHERE user_id = $1 AND status = 'active'
  `, userID).Scan(&employeeID)
	if err != nil {
		return "", err
	}
	return employeeID, nil
}

func (s *Store) DepartmentHODUser(ctx context.Context, departmentID string) (string, error) {
	var userID string
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(e.user_id::text, '')
    FROM departments d
    JOIN employees e ON d.hod_employee_id = e.id
    WHERE d.id = $1
  `, departmentID).Scan(&userID)
	if err != nil {
		return "", nil
	}
	return userID, nil
}

func (s *Store) InsertRequest(ctx context.Context, r *Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests
      (employee_id, campus_id, department_id, kind_code, is_half_day, session,
       start_date, end_date, number_of_days, reason,
       od_time_type, od_start_time, od_end_time, status)
    VALUES ($1,$2,NULLIF($3,'')::uuid,$4,$5,NULLIF($6,''),$7,$8,$9,$10,NULLIF($11,''),NULLIF($12,''),NULLIF($13,''),$14)
    RETURNING id
  `, r.EmployeeID, r.CampusID, r.DepartmentID, r.KindCode, r.IsHalfDay, r.Session,
		r.StartDate, r.EndDate, r.NumberOfDays, r.Reason,
		r.ODTimeType, r.ODStartTime, r.ODEndTime, r.Status).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, day := range r.AlternateSchedule {
		var scheduleID string
		if err := s.DB.QueryRow(ctx, `
      INSERT INTO alternate_schedules (request_id, day_date)
      VALUES ($1,$2)
      RETURNING id
    `, id, day.Date).Scan(&scheduleID); err != nil {
			return "", err
		}
		for _, period := range day.Periods {
			if _, err := s.DB.Exec(ctx, `
        INSERT INTO period_assignments (schedule_id, period_number, substitute_employee_id, assigned_class)
        VALUES ($1,$2,$3,$4)
      `, scheduleID, period.PeriodNumber, period.SubstituteID, period.AssignedClass); err != nil {
				return "", err
			}
		}
	}

	for _, workDayID := range r.SelectedCCLDays {
		if _, err := s.DB.Exec(ctx, `
      INSERT INTO ccl_request_days (request_id, work_day_id)
      VALUES ($1,$2)
    `, id, workDayID); err != nil {
			return "", err
		}
	}

	return id, nil
}

func (s *Store) GetRequest(ctx context.Context, requestID string) (Request, error) {
	var r Request
	var session, odTimeType, odStart, odEnd, modReason, decidedBy *string
	err := s.DB.QueryRow(ctx, `
    SELECT r.id, r.employee_id, trim(e.first_name || ' ' || e.last_name), e.employee_model,
           r.campus_id, COALESCE(r.department_id::text, ''), r.kind_code, r.is_half_day, r.session,
           r.start_date, r.end_date, r.number_of_days, r.reason,
           r.od_time_type, r.od_start_time, r.od_end_time,
           r.status, r.remarks, r.approved_start_date, r.approved_end_date,
           r.approved_number_of_days, r.modification_reason, r.decided_by::text, r.decided_at,
           r.created_at, r.updated_at
    FROM leave_requests r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.id = $1
  `, requestID).Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.EmployeeModel,
		&r.CampusID, &r.DepartmentID, &r.KindCode, &r.IsHalfDay, &session,
		&r.StartDate, &r.EndDate, &r.NumberOfDays, &r.Reason,
		&odTimeType, &odStart, &odEnd,
		&r.Status, &r.Remarks, &r.ApprovedStartDate, &r.ApprovedEndDate,
		&r.ApprovedDays, &modReason, &decidedBy, &r.DecidedAt,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return Request{}, ErrNotFound
	}
	r.Session = deref(session)
	r.ODTimeType = deref(odTimeType)
	r.ODStartTime = deref(odStart)
	r.ODEndTime = deref(odEnd)
	r.ModificationReason = deref(modReason)
	r.DecidedBy = deref(decidedBy)

	schedule, err := s.requestSchedule(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	r.AlternateSchedule = schedule

	cclDays, err := s.requestWorkDayIDs(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	r.SelectedCCLDays = cclDays

	return r, nil
}

func (s *Store) requestSchedule(ctx context.Context, requestID string) ([]DaySchedule, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.day_date, p.period_number, p.substitute_employee_id,
           trim(sub.first_name || ' ' || sub.last_name), p.assigned_class
    FROM alternate_schedules a
    LEFT JOIN period_assignments p ON p.schedule_id = a.id
    LEFT JOIN employees sub ON p.substitute_employee_id = sub.id
    WHERE a.request_id = $1
    ORDER BY a.day_date, p.period_number
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedule := []DaySchedule{}
	for rows.Next() {
		var date time.Time
		var periodNumber *int
		var substituteID, substituteName, assignedClass *string
		if err := rows.Scan(&date, &periodNumber, &substituteID, &substituteName, &assignedClass); err != nil {
			return nil, err
		}
		if len(schedule) == 0 || !schedule[len(schedule)-1].Date.Equal(date) {
			schedule = append(schedule, DaySchedule{Date: date, Periods: []PeriodAssignment{}})
		}
		if periodNumber == nil {
			continue
		}
		day := &schedule[len(schedule)-1]
		day.Periods = append(day.Periods, PeriodAssignment{
			PeriodNumber:   *periodNumber,
			SubstituteID:   deref(substituteID),
			SubstituteName: deref(substituteName),
			AssignedClass:  deref(assignedClass),
		})
	}
	return schedule, nil
}

func (s *Store) requestWorkDayIDs(ctx context.Context, requestID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT work_day_id FROM ccl_request_days WHERE request_id = $1
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RequestFilter scopes a listing by role visibility.
type RequestFilter struct {
	EmployeeID   string
	DepartmentID string
	CampusID     string
	Status       string
	Limit        int
	Offset       int
}

func (s *Store) ListRequests(ctx context.Context, filter RequestFilter) ([]Request, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		where += fmt.Sprintf(" AND r.department_id = $%d", len(args))
	}
	if filter.CampusID != "" {
		args = append(args, filter.CampusID)
		where += fmt.Sprintf(" AND r.campus_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests r"+where, args...).Scan(&total); err != nil {
		total = 0
	}

	query := `
    SELECT r.id, r.employee_id, trim(e.first_name || ' ' || e.last_name), e.employee_model,
           r.campus_id, COALESCE(r.department_id::text, ''), r.kind_code, r.is_half_day,
           COALESCE(r.session, ''), r.start_date, r.end_date, r.number_of_days, r.reason,
           r.status, r.remarks, r.created_at, r.updated_at
    FROM leave_requests r
    JOIN employees e ON r.employee_id = e.id
  ` + where + " ORDER BY r.created_at DESC"
	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, offsetPos)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.EmployeeName, &r.EmployeeModel,
			&r.CampusID, &r.DepartmentID, &r.KindCode, &r.IsHalfDay,
			&r.Session, &r.StartDate, &r.EndDate, &r.NumberOfDays, &r.Reason,
			&r.Status, &r.Remarks, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, err
		}
		requests = append(requests, r)
	}
	return requests, total, nil
}

// ApplyDecision writes a transition outcome. Approved dates and the
// recomputed day count are only set when an override was supplied.
func (s *Store) ApplyDecision(ctx context.Context, requestID, nextStatus string, d Decision, approvedDays *float64, actorUserID string, terminal bool) error {
	var approvedStart, approvedEnd *time.Time
	if d.ApprovedStart != nil {
		day := Day(*d.ApprovedStart)
		approvedStart = &day
	}
	if d.ApprovedEnd != nil {
		day := Day(*d.ApprovedEnd)
		approvedEnd = &day
	}

	if terminal {
		_, err := s.DB.Exec(ctx, `
      UPDATE leave_requests
      SET status = $1, remarks = $2, approved_start_date = $3, approved_end_date = $4,
          approved_number_of_days = $5, modification_reason = NULLIF($6,''),
          decided_by = $7, decided_at = now(), updated_at = now()
      WHERE id = $8
    `, nextStatus, d.Remarks, approvedStart, approvedEnd, approvedDays, d.ModificationReason, actorUserID, requestID)
		return err
	}

	_, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, remarks = $2, updated_at = now()
    WHERE id = $3
  `, nextStatus, d.Remarks, requestID)
	return err
}

// ReminderRow is a request still awaiting review.
type ReminderRow struct {
	RequestID    string
	EmployeeName string
	OwnerUserID  string
	Status       string
	CreatedAt    time.Time
}

func (s *Store) PendingOlderThan(ctx context.Context, cutoff time.Time) ([]ReminderRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.id, trim(e.first_name || ' ' || e.last_name), COALESCE(e.user_id::text, ''), r.status, r.created_at
    FROM leave_requests r
    JOIN employees e ON r.employee_id = e.id
    WHERE r.status NOT IN ($1,$2) AND r.created_at < $3
    ORDER BY r.created_at
  `, StatusApproved, StatusRejected, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReminderRow
	for rows.Next() {
		var row ReminderRow
		if err := rows.Scan(&row.RequestID, &row.EmployeeName, &row.OwnerUserID, &row.Status, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
