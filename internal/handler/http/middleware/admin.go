package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/response"
)

// AdminOnly must run after Authenticate.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if err := identity.RequireAdmin(); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
