package auth

import (
	"context"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
)

// Identity is the caller as resolved from storage on the current request.
type Identity struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  employee.Role `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == employee.RoleAdmin
}

// RequireAdmin fails with ErrAdminRequired unless the identity is an admin.
func (i Identity) RequireAdmin() error {
	if !i.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

func NewIdentity(e employee.Employee) Identity {
	return Identity{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Role:  e.Role,
	}
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
