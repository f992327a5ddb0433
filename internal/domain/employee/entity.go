package employee

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages employees, leave types and reviews requests
	RoleEmployee Role = "employee" // Submits leave requests
)

// Roles lists every assignable role.
var Roles = []string{string(RoleAdmin), string(RoleEmployee)}

type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	Position     string
	CreatedAt    time.Time
}

// IsAdmin checks if employee holds the admin role
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
