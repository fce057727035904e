package core

import "time"

// Campus is one site of the institution.
type Campus struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

// Department belongs to a campus and may have a head of department.
type Department struct {
	ID            string    `json:"id"`
	CampusID      string    `json:"campusId"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	HODEmployeeID string    `json:"hodEmployeeId,omitempty"`
	HODName       string    `json:"hodName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Employee is a staff member. The model decides the application flow:
// teaching staff provide an alternate schedule, others do not.
type Employee struct {
	ID           string    `json:"id"`
	CampusID     string    `json:"campusId"`
	DepartmentID string    `json:"departmentId,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName,omitempty"`
	Email        string    `json:"email"`
	Designation  string    `json:"designation,omitempty"`
	Model        string    `json:"employeeModel"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
