package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
	"github.com/punchd-app/punchd-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose JWT is missing, invalid, or not an
// access token. Runs after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFromRequest builds the acting worker out of the verified JWT claims.
// Services take this explicitly and never read identity from ambient state.
func ActorFromRequest(r *http.Request) (worker.Actor, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return worker.Actor{}, false
	}

	workerID, _ := claims["worker_id"].(string)
	companyID, _ := claims["company_id"].(string)
	role, _ := claims["role"].(string)
	if workerID == "" || companyID == "" {
		return worker.Actor{}, false
	}

	return worker.Actor{
		WorkerID:  workerID,
		CompanyID: companyID,
		Role:      worker.Role(role),
	}, true
}
