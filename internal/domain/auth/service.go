package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Authenticate verifies the token and re-reads the employee it names.
	Authenticate(ctx context.Context, token string) (Identity, error)
}
