package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/services"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgramHandler serves the training program endpoints
type ProgramHandler struct {
	programRepo *database.ProgramRepository
	storage     *services.StorageService
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(db *mongo.Database, storage *services.StorageService) *ProgramHandler {
	return &ProgramHandler{
		programRepo: database.NewProgramRepository(db),
		storage:     storage,
	}
}

// programView is a program plus its computed registration gate
type programView struct {
	models.TrainingProgram
	Eligibility models.Eligibility `json:"eligibility"`
}

// ListPrograms returns the active programs for the public site
func (h *ProgramHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	programs, err := h.programRepo.FindActive()
	if err != nil {
		log.Printf("Failed to list programs: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	now := time.Now()
	views := make([]programView, 0, len(programs))
	for _, p := range programs {
		views = append(views, programView{
			TrainingProgram: p,
			Eligibility:     p.CheckEligibility(now),
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"programs": views,
	})
}

// GetProgram returns one program with its registration gate.
// The wizard calls this before showing step 1.
func (h *ProgramHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	programID, ok := ParseProgramID(w, r)
	if !ok {
		return
	}

	program, err := h.programRepo.FindByID(programID)
	if err != nil {
		log.Printf("Failed to load program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if program == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrProgramNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"program": programView{
			TrainingProgram: *program,
			Eligibility:     program.CheckEligibility(time.Now()),
		},
	})
}

// ListAllPrograms returns every program, active or not (admin listing)
func (h *ProgramHandler) ListAllPrograms(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	programs, err := h.programRepo.FindAll()
	if err != nil {
		log.Printf("Failed to list programs: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"programs": programs,
	})
}

// CreateProgram creates a new training program
func (h *ProgramHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	program := &models.TrainingProgram{
		Title:               req.Title,
		Description:         req.Description,
		Fees:                req.Fees,
		Duration:            req.Duration,
		Location:            req.Location,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RegistrationEndDate: req.RegistrationEndDate,
		MaxParticipants:     req.MaxParticipants,
		CurrentParticipants: 0,
		PaymentDetails: models.PaymentDetails{
			UPIID: req.UPIID,
		},
		IsActive: isActive,
		Order:    req.Order,
	}

	if err := h.programRepo.Create(program); err != nil {
		log.Printf("Failed to create program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Program created: %s (ID: %s)", program.Title, program.ID.Hex())
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"program": *program,
	})
}

// UpdateProgram applies a partial update to a program
func (h *ProgramHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	programID, ok := ParseProgramID(w, r)
	if !ok {
		return
	}

	existing, err := h.programRepo.FindByID(programID)
	if err != nil {
		log.Printf("Failed to load program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if existing == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrProgramNotFound)
		return
	}

	var req models.UpdateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Fees != nil {
		update["fees"] = *req.Fees
	}
	if req.Duration != nil {
		update["duration"] = *req.Duration
	}
	if req.Location != nil {
		update["location"] = *req.Location
	}
	if req.StartDate != nil {
		update["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		update["end_date"] = *req.EndDate
	}
	if req.RegistrationEndDate != nil {
		update["registration_end_date"] = *req.RegistrationEndDate
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < existing.CurrentParticipants {
			utils.RespondError(w, http.StatusBadRequest, "max_participants cannot be below the current participant count")
			return
		}
		update["max_participants"] = *req.MaxParticipants
	}
	if req.UPIID != nil {
		update["payment_details.upi_id"] = *req.UPIID
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}

	if len(update) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.programRepo.Update(programID, update); err != nil {
		log.Printf("Failed to update program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Program updated: %s", programID.Hex())
	utils.RespondSuccess(w, "Program updated", nil)
}

// UploadQRCode stores the payment QR code image of a program
func (h *ProgramHandler) UploadQRCode(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if h.storage == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "File storage not configured")
		return
	}

	programID, ok := ParseProgramID(w, r)
	if !ok {
		return
	}

	program, err := h.programRepo.FindByID(programID)
	if err != nil {
		log.Printf("Failed to load program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if program == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrProgramNotFound)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("qr_code")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if msg := utils.CheckImageUpload(header); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	uploaded, err := h.storage.UploadImage(r.Context(), file, header.Filename, "qr-codes")
	if err != nil {
		log.Printf("Failed to upload QR code: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrUploadFailed)
		return
	}

	if err := h.programRepo.Update(programID, bson.M{"payment_details.qr_code_url": uploaded.URL}); err != nil {
		log.Printf("Failed to save QR code URL: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ QR code updated for program %s", programID.Hex())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"qr_code_url": uploaded.URL,
	})
}

// DeleteProgram removes a program
func (h *ProgramHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	programID, ok := ParseProgramID(w, r)
	if !ok {
		return
	}

	program, err := h.programRepo.FindByID(programID)
	if err != nil {
		log.Printf("Failed to load program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if program == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrProgramNotFound)
		return
	}

	if err := h.programRepo.Delete(programID); err != nil {
		log.Printf("Failed to delete program: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Program deleted: %s (%s)", program.Title, programID.Hex())
	utils.RespondSuccess(w, "Program deleted", nil)
}
