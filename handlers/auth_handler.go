package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// AuthHandler serves the back-office authentication endpoints
type AuthHandler struct {
	userRepo  *database.UserRepository
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(db *mongo.Database, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepo:  database.NewUserRepository(db),
		jwtSecret: jwtSecret,
	}
}

// Login authenticates an admin and returns a JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.userRepo.FindByEmail(email)
	if err != nil {
		log.Printf("Failed to look up user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, h.jwtSecret)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    *user,
	}

	log.Printf("✓ User logged in: %s (ID: %s)", user.Email, user.ID.Hex())
	utils.RespondJSON(w, http.StatusOK, response)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	claims := getClaims(r)
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	user, err := h.userRepo.FindByEmail(claims.Email)
	if err != nil {
		log.Printf("Failed to look up user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if user == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrUserNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    *user,
	})
}
