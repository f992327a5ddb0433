package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// Authenticate resolves the bearer token to a stored employee and puts the resulting
// auth.Identity in the request context.
func Authenticate(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token := jwtauth.TokenFromHeader(r)
			if token == "" {
				response.HandleError(w, auth.ErrMissingToken)
				return
			}

			identity, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}
