package middleware

import (
	"net/http"
	"strings"

	"baf-backend/utils"
)

// Guest rejects requests carrying a valid token.
// Used on login so an already-authenticated admin cannot log in again.
func Guest(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := parts[1]

			_, err := utils.ValidateToken(tokenString, jwtSecret)
			if err == nil {
				utils.RespondError(w, http.StatusForbidden, "You are already logged in")
				return
			}

			// Invalid or expired token, fine for a fresh login
			next.ServeHTTP(w, r)
		})
	}
}
