package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	// Update writes every column except the password unless passwordHash is non-nil.
	Update(ctx context.Context, e Employee, passwordHash *string) (Employee, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (Employee, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
