package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const DefaultExpiration = 24 * time.Hour

// Claims is the identity carried by a verified token
type Claims struct {
	EmployeeID string
	Role       employee.Role
	ExpiresAt  time.Time
}

type Service interface {
	Issue(employeeID string, role employee.Role) (token string, expiresAt int64, err error)
	Verify(token string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	expiration time.Duration
	tokenAuth  *jwtauth.JWTAuth
	now        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, expiration time.Duration) Service {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &JWTService{
		expiration: expiration,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:        time.Now,
	}
}

// Issue signs a token for the employee, valid for the configured window from now.
func (j *JWTService) Issue(employeeID string, role employee.Role) (token string, expiresAt int64, err error) {
	if employeeID == "" {
		return "", 0, fmt.Errorf("issue token: empty employee id")
	}
	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.expiration).Unix()

	claims := map[string]interface{}{
		"id":   employeeID,
		"role": string(role),
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Verify checks signature, shape and validity window. Every failure is reported as
// auth.ErrInvalidToken so callers cannot tell an expired token from a forged one.
func (j *JWTService) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, auth.ErrInvalidToken
	}

	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil || token == nil {
		return Claims{}, auth.ErrInvalidToken
	}

	idVal, ok := token.Get("id")
	if !ok {
		return Claims{}, auth.ErrInvalidToken
	}
	employeeID, ok := idVal.(string)
	if !ok || employeeID == "" {
		return Claims{}, auth.ErrInvalidToken
	}

	var role employee.Role
	if roleVal, ok := token.Get("role"); ok {
		if s, ok := roleVal.(string); ok {
			role = employee.Role(s)
		}
	}

	return Claims{
		EmployeeID: employeeID,
		Role:       role,
		ExpiresAt:  token.Expiration(),
	}, nil
}
