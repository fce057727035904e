package core

import (
	"fmt"
	"net/mail"
	"strings"

	"campusleave/internal/domain/leave"
)

var employeeModels = map[string]bool{
	leave.ModelTeaching:    true,
	leave.ModelNonTeaching: true,
	leave.ModelHR:          true,
}

// FieldError names the field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidateEmployee checks the fields a new or updated employee record
// must carry before it reaches the store.
func ValidateEmployee(emp Employee) error {
	if strings.TrimSpace(emp.FirstName) == "" {
		return &FieldError{Field: "firstName", Reason: "is required"}
	}
	if _, err := mail.ParseAddress(emp.Email); err != nil {
		return &FieldError{Field: "email", Reason: "is invalid"}
	}
	if !employeeModels[emp.Model] {
		return &FieldError{Field: "employeeModel", Reason: "must be teaching, non_teaching or hr"}
	}
	if emp.CampusID == "" {
		return &FieldError{Field: "campusId", Reason: "is required"}
	}
	return nil
}

// ValidateDepartment checks a department record.
func ValidateDepartment(dep Department) error {
	if strings.TrimSpace(dep.Name) == "" {
		return &FieldError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(dep.Code) == "" {
		return &FieldError{Field: "code", Reason: "is required"}
	}
	if dep.CampusID == "" {
		return &FieldError{Field: "campusId", Reason: "is required"}
	}
	return nil
}
