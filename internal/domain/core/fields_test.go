package core

import (
	"testing"

	"campusleave/internal/domain/leave"
)

func validEmployee() Employee {
	return Employee{
		CampusID:  "campus-1",
		FirstName: "Ravi",
		Email:     "ravi@campus.edu",
		Model:     leave.ModelTeaching,
	}
}

func TestValidateEmployee(t *testing.T) {
	if err := ValidateEmployee(validEmployee()); err != nil {
		t.Fatalf("valid employee rejected: %v", err)
	}

	emp := validEmployee()
	emp.FirstName = "  "
	if err := ValidateEmployee(emp); err == nil {
		t.Fatalf("blank first name accepted")
	}

	emp = validEmployee()
	emp.Email = "not-an-email"
	if err := ValidateEmployee(emp); err == nil {
		t.Fatalf("bad email accepted")
	}

	emp = validEmployee()
	emp.Model = "contract"
	if err := ValidateEmployee(emp); err == nil {
		t.Fatalf("unknown employee model accepted")
	}

	emp = validEmployee()
	emp.CampusID = ""
	if err := ValidateEmployee(emp); err == nil {
		t.Fatalf("missing campus accepted")
	}
}

func TestValidateDepartment(t *testing.T) {
	dep := Department{CampusID: "campus-1", Name: "Physics", Code: "PHY"}
	if err := ValidateDepartment(dep); err != nil {
		t.Fatalf("valid department rejected: %v", err)
	}
	dep.Code = ""
	if err := ValidateDepartment(dep); err == nil {
		t.Fatalf("missing code accepted")
	}
}
