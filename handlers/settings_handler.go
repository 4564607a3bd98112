package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsHandler serves the site-wide editable content
type SettingsHandler struct {
	settingsRepo *database.SiteSettingsRepository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(db *mongo.Database) *SettingsHandler {
	return &SettingsHandler{
		settingsRepo: database.NewSiteSettingsRepository(db),
	}
}

// GetSettings returns the site settings for the public site
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	settings, err := h.settingsRepo.Get()
	if err != nil {
		log.Printf("Failed to load site settings: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if settings == nil {
		settings = &models.SiteSettings{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": *settings,
	})
}

// UpdateSettings applies a partial settings update (admin)
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	claims := getClaims(r)
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	var req models.UpdateSiteSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	update := bson.M{"updated_by": claims.Email}
	if req.FoundationName != nil {
		update["foundation_name"] = *req.FoundationName
	}
	if req.Tagline != nil {
		update["tagline"] = *req.Tagline
	}
	if req.AboutText != nil {
		update["about_text"] = *req.AboutText
	}
	if req.ContactEmail != nil {
		update["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		update["contact_phone"] = *req.ContactPhone
	}
	if req.Address != nil {
		update["address"] = *req.Address
	}
	if req.SocialLinks != nil {
		update["social_links"] = req.SocialLinks
	}

	if len(update) == 1 {
		utils.RespondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.settingsRepo.Upsert(update); err != nil {
		log.Printf("Failed to save site settings: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Site settings updated by %s", claims.Email)
	utils.RespondSuccess(w, "Settings updated", nil)
}
