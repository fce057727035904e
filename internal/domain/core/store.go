package core

import (
	"context"
	"errors"

	"campusleave/internal/platform/querier"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) ListCampuses(ctx context.Context) ([]Campus, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, code, created_at
    FROM campuses
    ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Campus
	for rows.Next() {
		var c Campus
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CreateCampus(ctx context.Context, name, code string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO campuses (name, code) VALUES ($1, $2) RETURNING id`, name, code).Scan(&id)
	return id, err
}

func (s *Store) ListDepartments(ctx context.Context, campusID string) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.campus_id, d.name, d.code,
           COALESCE(d.hod_employee_id::text, ''),
           COALESCE(trim(e.first_name || ' ' || e.last_name), ''),
           d.created_at
    FROM departments d
    LEFT JOIN employees e ON e.id = d.hod_employee_id
    WHERE ($1 = '' OR d.campus_id = $1::uuid)
    ORDER BY d.name`, campusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.CampusID, &d.Name, &d.Code, &d.HODEmployeeID, &d.HODName, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (campus_id, name, code)
    VALUES ($1, $2, $3)
    RETURNING id`, dep.CampusID, dep.Name, dep.Code).Scan(&id)
	return id, err
}

// AssignHOD points a department at its head. The employee must belong
// to the department.
func (s *Store) AssignHOD(ctx context.Context, departmentID, employeeID string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET hod_employee_id = $2
    WHERE id = $1
      AND EXISTS (SELECT 1 FROM employees WHERE id = $2 AND department_id = $1)`,
		departmentID, employeeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, campus_id,
           COALESCE(department_id::text, ''),
           COALESCE(user_id::text, ''),
           first_name, last_name, email, designation, employee_model, status, created_at
    FROM employees
    WHERE id = $1`, employeeID)

	var emp Employee
	if err := row.Scan(
		&emp.ID, &emp.CampusID, &emp.DepartmentID, &emp.UserID,
		&emp.FirstName, &emp.LastName, &emp.Email, &emp.Designation,
		&emp.Model, &emp.Status, &emp.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) GetEmployeeByUserID(ctx context.Context, userID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, campus_id,
           COALESCE(department_id::text, ''),
           COALESCE(user_id::text, ''),
           first_name, last_name, email, designation, employee_model, status, created_at
    FROM employees
    WHERE user_id = $1`, userID)

	var emp Employee
	if err := row.Scan(
		&emp.ID, &emp.CampusID, &emp.DepartmentID, &emp.UserID,
		&emp.FirstName, &emp.LastName, &emp.Email, &emp.Designation,
		&emp.Model, &emp.Status, &emp.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) ListEmployees(ctx context.Context, campusID, departmentID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, campus_id,
           COALESCE(department_id::text, ''),
           COALESCE(user_id::text, ''),
           first_name, last_name, email, designation, employee_model, status, created_at
    FROM employees
    WHERE ($1 = '' OR campus_id = $1::uuid)
      AND ($2 = '' OR department_id = $2::uuid)
    ORDER BY last_name, first_name`, campusID, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(
			&emp.ID, &emp.CampusID, &emp.DepartmentID, &emp.UserID,
			&emp.FirstName, &emp.LastName, &emp.Email, &emp.Designation,
			&emp.Model, &emp.Status, &emp.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (campus_id, department_id, user_id, first_name, last_name, email, designation, employee_model, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active')
    RETURNING id`,
		emp.CampusID, nullIfEmpty(emp.DepartmentID), nullIfEmpty(emp.UserID),
		emp.FirstName, emp.LastName, emp.Email, emp.Designation, emp.Model,
	).Scan(&id)
	return id, err
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID string, emp Employee) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET department_id = $2,
        first_name = $3,
        last_name = $4,
        email = $5,
        designation = $6,
        employee_model = $7,
        status = $8
    WHERE id = $1`,
		employeeID, nullIfEmpty(emp.DepartmentID),
		emp.FirstName, emp.LastName, emp.Email, emp.Designation, emp.Model, emp.Status,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
