package core

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListCampuses(ctx context.Context) ([]Campus, error) {
	return s.store.ListCampuses(ctx)
}

func (s *Service) CreateCampus(ctx context.Context, name, code string) (string, error) {
	return s.store.CreateCampus(ctx, name, code)
}

func (s *Service) ListDepartments(ctx context.Context, campusID string) ([]Department, error) {
	return s.store.ListDepartments(ctx, campusID)
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (string, error) {
	if err := ValidateDepartment(dep); err != nil {
		return "", err
	}
	return s.store.CreateDepartment(ctx, dep)
}

func (s *Service) AssignHOD(ctx context.Context, departmentID, employeeID string) error {
	return s.store.AssignHOD(ctx, departmentID, employeeID)
}

func (s *Service) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	return s.store.GetEmployee(ctx, employeeID)
}

func (s *Service) GetEmployeeByUserID(ctx context.Context, userID string) (*Employee, error) {
	return s.store.GetEmployeeByUserID(ctx, userID)
}

func (s *Service) ListEmployees(ctx context.Context, campusID, departmentID string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, campusID, departmentID)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	if err := ValidateEmployee(emp); err != nil {
		return "", err
	}
	return s.store.CreateEmployee(ctx, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, employeeID string, emp Employee) error {
	if err := ValidateEmployee(emp); err != nil {
		return err
	}
	return s.store.UpdateEmployee(ctx, employeeID, emp)
}
