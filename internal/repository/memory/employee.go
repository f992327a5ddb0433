package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

// emailTaken compares case-insensitively and must be called with mu held.
func (r *employeeRepository) emailTaken(email, exceptID string) bool {
	for id, e := range r.s.employees {
		if strings.EqualFold(e.Email, email) && id != exceptID {
			return true
		}
	}
	return false
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(newEmployee.Email, "") {
		return employee.Employee{}, employee.ErrEmailExists
	}
	id, err := r.s.newID()
	if err != nil {
		return employee.Employee{}, err
	}
	newEmployee.ID = id
	newEmployee.CreatedAt = r.s.now()
	r.s.employees[id] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.employees {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee, passwordHash *string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if r.emailTaken(e.Email, e.ID) {
		return employee.Employee{}, employee.ErrEmailExists
	}

	current.Name = e.Name
	current.Email = e.Email
	current.Role = e.Role
	current.Department = e.Department
	current.Position = e.Position
	if passwordHash != nil {
		current.PasswordHash = *passwordHash
	}
	r.s.employees[e.ID] = current
	return current, nil
}

func (r *employeeRepository) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.employees[req.EmployeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if r.emailTaken(req.Email, req.EmployeeID) {
		return employee.Employee{}, employee.ErrEmailExists
	}

	current.Name = req.Name
	current.Email = req.Email
	current.Department = req.Department
	current.Position = req.Position
	r.s.employees[req.EmployeeID] = current
	return current, nil
}

func (r *employeeRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	current.PasswordHash = passwordHash
	r.s.employees[id] = current
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.s.employees, id)
	for leaveID, lr := range r.s.leaves {
		if lr.EmployeeID == id {
			delete(r.s.leaves, leaveID)
		}
	}
	return nil
}
