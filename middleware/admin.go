package middleware

import (
	"log"
	"net/http"

	"baf-backend/database"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// RequireAdmin checks that the authenticated user is an administrator
func RequireAdmin(db *mongo.Database) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			userRepo := database.NewUserRepository(db)
			user, err := userRepo.FindByEmail(claims.Email)
			if err != nil || user == nil {
				log.Printf("User not found: %v", err)
				utils.RespondError(w, http.StatusUnauthorized, "User not found")
				return
			}

			if user.Admin != 1 {
				log.Printf("⚠️  Admin access denied for: %s (admin=%d)", user.Email, user.Admin)
				utils.RespondError(w, http.StatusForbidden, "Access denied - admin only")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
