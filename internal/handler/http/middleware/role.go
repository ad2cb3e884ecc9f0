package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/officetrack/officetrack-backend-go/internal/handler/http/response"
)

// AdminOnly requires the admin role. Token minting and the reporting surface
// are operator features; scan endpoints stay outside this gate.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Admin access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
