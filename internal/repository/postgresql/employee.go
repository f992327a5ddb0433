package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-management-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, name, email, password, role, department, position, created_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Role, &e.Department, &e.Position, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, err
}

func translateEmployeeWriteErr(err error) error {
	if constraintViolation(err, pgUniqueViolation, "employees_email_key") {
		return employee.ErrEmailExists
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (id, name, email, password, role, department, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id.String(), newEmployee.Name, newEmployee.Email, newEmployee.PasswordHash,
		newEmployee.Role, newEmployee.Department, newEmployee.Position,
	))
	if err != nil {
		return employee.Employee{}, translateEmployeeWriteErr(err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !validID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(q.QueryRow(ctx, query, id))
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE lower(email) = lower($1)`
	return scanEmployee(q.QueryRow(ctx, query, email))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee, passwordHash *string) (employee.Employee, error) {
	if !validID(e.ID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET name = $2, email = $3, role = $4, department = $5, position = $6,
			password = COALESCE($7, password)
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.Name, e.Email, e.Role, e.Department, e.Position, passwordHash,
	))
	if err != nil {
		return employee.Employee{}, translateEmployeeWriteErr(err)
	}
	return updated, nil
}

// UpdateProfile implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.Employee, error) {
	if !validID(req.EmployeeID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET name = $2, email = $3, department = $4, position = $5
		WHERE id = $1
		RETURNING ` + employeeColumns

	updated, err := scanEmployee(q.QueryRow(ctx, query,
		req.EmployeeID, req.Name, req.Email, req.Department, req.Position,
	))
	if err != nil {
		return employee.Employee{}, translateEmployeeWriteErr(err)
	}
	return updated, nil
}

// UpdatePassword implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	if !validID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	commandTag, err := q.Exec(ctx, `UPDATE employees SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository. The employee's leave requests go with it.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)
	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
