package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/services"
	"baf-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TeamHandler serves the public team page and its admin management endpoints
type TeamHandler struct {
	teamRepo *database.TeamRepository
	storage  *services.StorageService
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(db *mongo.Database, storage *services.StorageService) *TeamHandler {
	return &TeamHandler{
		teamRepo: database.NewTeamRepository(db),
		storage:  storage,
	}
}

// ListMembers returns the team ordered for display
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	members, err := h.teamRepo.FindAll()
	if err != nil {
		log.Printf("Failed to list team members: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"members": members,
	})
}

// CreateMember adds a team member, photo optional (admin)
func (h *TeamHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	order := 0
	if v := r.FormValue("order"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "order must be a number")
			return
		}
		order = parsed
	}

	req := models.CreateTeamMemberRequest{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Role:  strings.TrimSpace(r.FormValue("role")),
		Bio:   strings.TrimSpace(r.FormValue("bio")),
		Order: order,
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	photoURL := ""
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()

		if msg := utils.CheckImageUpload(header); msg != "" {
			utils.RespondError(w, http.StatusBadRequest, msg)
			return
		}

		if h.storage == nil {
			utils.RespondError(w, http.StatusServiceUnavailable, "File storage not configured")
			return
		}

		uploaded, err := h.storage.UploadImage(r.Context(), file, header.Filename, "team")
		if err != nil {
			log.Printf("Failed to upload member photo: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, constants.ErrUploadFailed)
			return
		}
		photoURL = uploaded.URL
	}

	member := &models.TeamMember{
		Name:     req.Name,
		Role:     req.Role,
		Bio:      req.Bio,
		PhotoURL: photoURL,
		Order:    req.Order,
	}

	if err := h.teamRepo.Create(member); err != nil {
		log.Printf("Failed to create team member: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Team member created: %s (%s)", member.Name, member.ID.Hex())
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"member":  *member,
	})
}

// UpdateMember edits member fields selectively (admin)
func (h *TeamHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	existing, err := h.teamRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load team member: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if existing == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrMemberNotFound)
		return
	}

	var req models.UpdateTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Role != nil {
		update["role"] = *req.Role
	}
	if req.Bio != nil {
		update["bio"] = *req.Bio
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}

	if len(update) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.teamRepo.Update(id, update); err != nil {
		log.Printf("Failed to update team member: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondSuccess(w, "Member updated", nil)
}

// DeleteMember removes a team member (admin)
func (h *TeamHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	member, err := h.teamRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load team member: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if member == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrMemberNotFound)
		return
	}

	if err := h.teamRepo.Delete(id); err != nil {
		log.Printf("Failed to delete team member: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Team member deleted: %s", member.Name)
	utils.RespondSuccess(w, "Member deleted", nil)
}
