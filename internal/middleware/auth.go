// internal/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

// AdminOnly пропускает только администраторов.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.RespondWithError(w, http.StatusUnauthorized, "Invalid claims")
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.RespondWithError(w, http.StatusForbidden, "Role not found")
				return
			}

			switch role {
			case "admin", "superadmin":
				// Всё ок, разрешено
			default:
				response.RespondWithError(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
