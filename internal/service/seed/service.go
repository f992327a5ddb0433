package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/leave"
	"golang.org/x/crypto/bcrypt"
)

// DefaultLeaveTypes are created when no leave type exists yet.
var DefaultLeaveTypes = []leave.LeaveType{
	{Name: "Annual Leave", Description: "Paid yearly vacation", DefaultDays: 20},
	{Name: "Sick Leave", Description: "Absence due to illness or medical appointments", DefaultDays: 10},
	{Name: "Personal Leave", Description: "Time off for personal matters", DefaultDays: 5},
}

const adminName = "Administrator"

// Transactor runs fn atomically; repositories called with the ctx it receives join the transaction.
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

type Config struct {
	AdminEmail    string
	AdminPassword string
}

type Service struct {
	employeeRepo  employee.EmployeeRepository
	leaveTypeRepo leave.LeaveTypeRepository
	transact      Transactor
	bcryptCost    int
}

func NewService(employeeRepo employee.EmployeeRepository, leaveTypeRepo leave.LeaveTypeRepository, transact Transactor) *Service {
	return &Service{
		employeeRepo:  employeeRepo,
		leaveTypeRepo: leaveTypeRepo,
		transact:      transact,
		bcryptCost:    bcrypt.DefaultCost,
	}
}

// Run is idempotent: existing rows are never modified.
func (s *Service) Run(ctx context.Context, cfg Config) error {
	return s.transact(ctx, func(ctx context.Context) error {
		if err := s.ensureAdmin(ctx, cfg); err != nil {
			return err
		}
		return s.ensureLeaveTypes(ctx)
	})
}

func (s *Service) ensureAdmin(ctx context.Context, cfg Config) error {
	if cfg.AdminEmail == "" {
		return s.warnIfNoAdmin(ctx)
	}
	email := employee.NormalizeEmail(cfg.AdminEmail)

	_, err := s.employeeRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	_, err = s.employeeRepo.Create(ctx, employee.Employee{
		Name:         adminName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         employee.RoleAdmin,
		Department:   "Management",
		Position:     adminName,
	})
	if err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}
	slog.Info("seeded admin account", "email", email)
	return nil
}

// warnIfNoAdmin flags a store nobody can manage: employees are only created by admins.
func (s *Service) warnIfNoAdmin(ctx context.Context) error {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	for _, e := range employees {
		if e.IsAdmin() {
			return nil
		}
	}
	slog.Warn("no admin account exists and SEED_ADMIN_EMAIL is not set; nobody can manage employees")
	return nil
}

func (s *Service) ensureLeaveTypes(ctx context.Context) error {
	count, err := s.leaveTypeRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count leave types: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, lt := range DefaultLeaveTypes {
		if _, err := s.leaveTypeRepo.Create(ctx, lt); err != nil {
			return fmt.Errorf("failed to create leave type %s: %w", lt.Name, err)
		}
	}
	slog.Info("seeded default leave types", "count", len(DefaultLeaveTypes))
	return nil
}
