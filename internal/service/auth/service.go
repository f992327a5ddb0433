package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	employeeData, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employeeData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.Issue(employeeData.ID, employeeData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: auth.UserResponse{
			ID:    employeeData.ID,
			Name:  employeeData.Name,
			Email: employeeData.Email,
			Role:  employeeData.Role,
		},
	}, nil
}

// Authenticate implements auth.AuthService. The role carried in the token is ignored;
// the stored row is authoritative.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, auth.ErrMissingToken
	}

	claims, err := a.Service.Verify(token)
	if err != nil {
		return auth.Identity{}, auth.ErrInvalidToken
	}

	employeeData, err := a.EmployeeRepository.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.Identity{}, auth.ErrInvalidToken
		}
		return auth.Identity{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return auth.NewIdentity(employeeData), nil
}
