package employee

import "context"

// EmployeeService defines admin operations on employee records
type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// ProfileService defines self-service operations for the authenticated employee
type ProfileService interface {
	GetProfile(ctx context.Context, employeeID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
