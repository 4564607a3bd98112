package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContactHandler serves the public contact form and the admin inbox
type ContactHandler struct {
	contactRepo *database.ContactRepository
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(db *mongo.Database) *ContactHandler {
	return &ContactHandler{
		contactRepo: database.NewContactRepository(db),
	}
}

// Submit stores a message from the public contact form
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.contactRepo.Create(message); err != nil {
		log.Printf("Failed to save contact message: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Contact message received from %s: %s", message.Email, message.Subject)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Message sent successfully",
	})
}

// ListMessages returns the inbox, newest first (admin)
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	messages, err := h.contactRepo.FindAll()
	if err != nil {
		log.Printf("Failed to list contact messages: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
	})
}

// MarkRead flags a message as handled (admin)
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	message, err := h.contactRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load contact message: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if message == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrMessageNotFound)
		return
	}

	if err := h.contactRepo.MarkRead(id); err != nil {
		log.Printf("Failed to mark message read: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondSuccess(w, "Message marked as read", nil)
}

// DeleteMessage removes a message from the inbox (admin)
func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	message, err := h.contactRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load contact message: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if message == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrMessageNotFound)
		return
	}

	if err := h.contactRepo.Delete(id); err != nil {
		log.Printf("Failed to delete contact message: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondSuccess(w, "Message deleted", nil)
}
