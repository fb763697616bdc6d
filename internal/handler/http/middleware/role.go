package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/response"
)

// RequireAdmin requires admin or owner role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, worker.ErrAdminAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, worker.ErrAdminAccessRequired)
			return
		}

		role := worker.Role(roleStr)
		if role != worker.RoleAdmin && role != worker.RoleOwner {
			response.HandleError(w, worker.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireOwner requires owner role.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, worker.ErrOwnerAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(worker.RoleOwner) {
			response.HandleError(w, worker.ErrOwnerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
