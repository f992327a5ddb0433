package employee

import (
	"context"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type ProfileServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	bcryptCost   int
}

func NewProfileService(employeeRepo employee.EmployeeRepository) employee.ProfileService {
	return &ProfileServiceImpl{
		employeeRepo: employeeRepo,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

// GetProfile implements employee.ProfileService.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, employeeID string) (employee.ProfileResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.NewProfileResponse(e), nil
}

// UpdateProfile implements employee.ProfileService. Role and password are not touched.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	updated, err := s.employeeRepo.UpdateProfile(ctx, req)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.NewProfileResponse(updated), nil
}

// ChangePassword implements employee.ProfileService.
func (s *ProfileServiceImpl) ChangePassword(ctx context.Context, req employee.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return employee.ErrIncorrectPassword
	}

	hash, err := hashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.employeeRepo.UpdatePassword(ctx, req.EmployeeID, hash)
}
