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

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminHandler serves account management and the dashboard statistics
type AdminHandler struct {
	userRepo         *database.UserRepository
	programRepo      *database.ProgramRepository
	registrationRepo *database.RegistrationRepository
	galleryRepo      *database.GalleryRepository
	teamRepo         *database.TeamRepository
	contactRepo      *database.ContactRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(db *mongo.Database) *AdminHandler {
	return &AdminHandler{
		userRepo:         database.NewUserRepository(db),
		programRepo:      database.NewProgramRepository(db),
		registrationRepo: database.NewRegistrationRepository(db),
		galleryRepo:      database.NewGalleryRepository(db),
		teamRepo:         database.NewTeamRepository(db),
		contactRepo:      database.NewContactRepository(db),
	}
}

// ListUsers returns every back-office account
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	users, err := h.userRepo.FindAll()
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

// UpdateUser edits an account (admin)
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	user, err := h.userRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if user == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrUserNotFound)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		update["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Admin != nil {
		if *req.Admin != 0 && *req.Admin != 1 {
			utils.RespondError(w, http.StatusBadRequest, "admin must be 0 or 1")
			return
		}
		update["admin"] = *req.Admin
	}

	if len(update) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.userRepo.Update(id, update); err != nil {
		log.Printf("Failed to update user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ User updated: %s", user.Email)
	utils.RespondSuccess(w, "User updated", nil)
}

// DeleteUser removes an account. The caller cannot delete itself.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	claims := getClaims(r)
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	user, err := h.userRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if user == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrUserNotFound)
		return
	}

	if user.Email == claims.Email {
		utils.RespondError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.userRepo.Delete(id); err != nil {
		log.Printf("Failed to delete user: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ User deleted: %s", user.Email)
	utils.RespondSuccess(w, "User deleted", nil)
}

// Stats aggregates the dashboard counters
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats := models.AdminStatsResponse{}

	counters := []struct {
		dest  *int
		count func() (int64, error)
	}{
		{&stats.TotalUsers, h.userRepo.CountAll},
		{&stats.TotalAdmins, h.userRepo.CountAdmins},
		{&stats.TotalPrograms, h.programRepo.CountAll},
		{&stats.ActivePrograms, h.programRepo.CountActive},
		{&stats.TotalRegistrations, h.registrationRepo.CountAll},
		{&stats.PendingRegistrations, func() (int64, error) { return h.registrationRepo.CountByStatus(models.StatusPending) }},
		{&stats.ApprovedRegistrations, func() (int64, error) { return h.registrationRepo.CountByStatus(models.StatusApproved) }},
		{&stats.RejectedRegistrations, func() (int64, error) { return h.registrationRepo.CountByStatus(models.StatusRejected) }},
		{&stats.GalleryImages, h.galleryRepo.CountAll},
		{&stats.TeamMembers, h.teamRepo.CountAll},
		{&stats.UnreadMessages, h.contactRepo.CountUnread},
	}

	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			log.Printf("Failed to compute stats: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
			return
		}
		*c.dest = int(n)
	}

	participants, err := h.programRepo.GetTotalParticipants()
	if err != nil {
		log.Printf("Failed to compute stats: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	stats.TotalParticipants = participants

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}
