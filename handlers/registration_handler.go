package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/middleware"
	"baf-backend/models"
	"baf-backend/services"
	"baf-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// documentFields are the three multipart file fields of the wizard, in upload order
var documentFields = []string{"aadhar_front", "aadhar_back", "passport_photo"}

// RegistrationHandler serves the public registration pipeline and the admin review endpoints
type RegistrationHandler struct {
	registrationRepo *database.RegistrationRepository
	programRepo      *database.ProgramRepository
	userRepo         *database.UserRepository
	fcmTokenRepo     *database.FCMTokenRepository
	storage          *services.StorageService
	fcmService       *services.FCMService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(db *mongo.Database, storage *services.StorageService, fcmService *services.FCMService) *RegistrationHandler {
	return &RegistrationHandler{
		registrationRepo: database.NewRegistrationRepository(db),
		programRepo:      database.NewProgramRepository(db),
		userRepo:         database.NewUserRepository(db),
		fcmTokenRepo:     database.NewFCMTokenRepository(db),
		storage:          storage,
		fcmService:       fcmService,
	}
}

// Register handles the wizard submission: personal details, three document
// images and the payment reference arrive together as one multipart form.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
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

	// Three images at 5 MB each plus the text fields
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		log.Printf("Failed to parse form: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	req := models.RegistrationRequest{
		Name:                    strings.TrimSpace(r.FormValue("name")),
		Email:                   strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Mobile:                  strings.TrimSpace(r.FormValue("mobile")),
		FatherMotherHusbandName: strings.TrimSpace(r.FormValue("father_mother_husband_name")),
		AadharNumber:            strings.TrimSpace(r.FormValue("aadhar_number")),
		DateOfBirth:             strings.TrimSpace(r.FormValue("date_of_birth")),
		Street:                  strings.TrimSpace(r.FormValue("street")),
		City:                    strings.TrimSpace(r.FormValue("city")),
		State:                   strings.TrimSpace(r.FormValue("state")),
		PinCode:                 strings.TrimSpace(r.FormValue("pin_code")),
		PaymentMethod:           r.FormValue("payment_method"),
		TransactionID:           strings.TrimSpace(r.FormValue("transaction_id")),
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
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

	// The gate is re-checked here even though the wizard checked it at
	// step 1: the deadline may have passed or the last seat may have been
	// taken while the form was being filled in.
	eligibility := program.CheckEligibility(time.Now())
	if !eligibility.RegistrationOpen {
		status, message := eligibilityError(eligibility.Reason)
		utils.RespondError(w, status, message)
		return
	}

	files, ok := h.collectDocuments(w, r)
	if !ok {
		return
	}

	documents, err := h.uploadDocuments(r, files)
	if err != nil {
		log.Printf("Document upload failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrUploadFailed)
		return
	}

	// Seat reservation is a conditional increment, so two submissions
	// racing for the last seat cannot both get in.
	reserved, err := h.programRepo.ReserveSeat(programID)
	if err != nil {
		log.Printf("Failed to reserve seat: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if !reserved {
		utils.RespondError(w, http.StatusConflict, constants.ErrProgramFull)
		return
	}

	registration := &models.Registration{
		RegistrationID:          utils.GenerateRegistrationID(),
		Name:                    req.Name,
		Email:                   req.Email,
		Mobile:                  req.Mobile,
		FatherMotherHusbandName: req.FatherMotherHusbandName,
		AadharNumber:            req.AadharNumber,
		DateOfBirth:             req.DateOfBirth,
		Address: models.Address{
			Street:  req.Street,
			City:    req.City,
			State:   req.State,
			PinCode: req.PinCode,
		},
		Documents: *documents,
		Payment: models.Payment{
			TransactionID: req.TransactionID,
			Amount:        program.Fees,
			PaymentMethod: req.PaymentMethod,
			PaymentDate:   time.Now(),
		},
		ProgramID:    programID,
		ProgramTitle: program.Title,
		ProgramFees:  program.Fees,
	}

	if err := h.registrationRepo.Create(registration); err != nil {
		log.Printf("Failed to save registration: %v", err)
		// Give the seat back, the registration was not stored
		if releaseErr := h.programRepo.ReleaseSeat(programID); releaseErr != nil {
			log.Printf("⚠️  Failed to release seat after insert failure: %v", releaseErr)
		}
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Registration submitted: %s (%s) for '%s'", registration.RegistrationID, registration.Email, program.Title)

	go h.notifyAdminsNewRegistration(registration)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"message":      "Registration submitted successfully!",
		"registration": registration.Confirmation(),
	})
}

// eligibilityError maps a closed registration gate to its HTTP response
func eligibilityError(reason string) (int, string) {
	switch reason {
	case models.ReasonProgramFull:
		return http.StatusConflict, constants.ErrProgramFull
	case models.ReasonInactive:
		return http.StatusForbidden, constants.ErrProgramInactive
	default:
		return http.StatusForbidden, constants.ErrRegistrationEnded
	}
}

// collectDocuments pulls the three required files out of the form and
// validates each one. Responds and returns false on any problem.
func (h *RegistrationHandler) collectDocuments(w http.ResponseWriter, r *http.Request) (map[string]*multipart.FileHeader, bool) {
	files := make(map[string]*multipart.FileHeader, len(documentFields))

	for _, field := range documentFields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Missing file: %s", field))
			return nil, false
		}
		header := headers[0]
		if msg := utils.CheckImageUpload(header); msg != "" {
			utils.RespondError(w, http.StatusBadRequest, msg)
			return nil, false
		}
		files[field] = header
	}

	return files, true
}

// uploadDocuments stores the three images concurrently and returns their URLs
func (h *RegistrationHandler) uploadDocuments(r *http.Request, files map[string]*multipart.FileHeader) (*models.Documents, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		urls    = make(map[string]string, len(documentFields))
		lastErr error
	)

	for _, field := range documentFields {
		header := files[field]
		wg.Add(1)
		go func(field string, header *multipart.FileHeader) {
			defer wg.Done()

			file, err := header.Open()
			if err != nil {
				mu.Lock()
				lastErr = fmt.Errorf("open %s: %w", field, err)
				mu.Unlock()
				return
			}
			defer file.Close()

			uploaded, err := h.storage.UploadDocument(r.Context(), file, header.Filename, field)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lastErr = err
				return
			}
			urls[field] = uploaded.URL
		}(field, header)
	}

	wg.Wait()

	if lastErr != nil {
		return nil, lastErr
	}

	return &models.Documents{
		AadharFront:   urls["aadhar_front"],
		AadharBack:    urls["aadhar_back"],
		PassportPhoto: urls["passport_photo"],
	}, nil
}

// notifyAdminsNewRegistration pushes a notification to admin devices
func (h *RegistrationHandler) notifyAdminsNewRegistration(registration *models.Registration) {
	if h.fcmService == nil || !h.fcmService.Enabled() {
		return
	}

	admins, err := h.userRepo.FindAdmins()
	if err != nil {
		log.Printf("⚠️  Failed to load admins: %v", err)
		return
	}

	var adminTokens []string
	for _, admin := range admins {
		tokens, err := h.fcmTokenRepo.FindByUserEmail(admin.Email)
		if err != nil {
			continue
		}
		for _, t := range tokens {
			adminTokens = append(adminTokens, t.Token)
		}
	}

	if len(adminTokens) == 0 {
		return
	}

	title := "🎉 New registration!"
	message := fmt.Sprintf("%s registered for '%s'", registration.Name, registration.ProgramTitle)
	data := map[string]string{
		"type":            "new_registration",
		"registration_id": registration.RegistrationID,
		"program_title":   registration.ProgramTitle,
	}

	success, failed, _ := h.fcmService.SendToAll(adminTokens, title, message, data)
	log.Printf("📧 New registration notice sent to admins: %d ok, %d failed", success, failed)
}

// GetConfirmation serves the standalone confirmation page lookup.
// The response is built from the stored record, never from client input.
func (h *RegistrationHandler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	registrationID := mux.Vars(r)["registration_id"]

	registration, err := h.registrationRepo.FindByRegistrationID(registrationID)
	if err != nil {
		log.Printf("Failed to load registration: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if registration == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrRegistrationNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"registration": registration.Confirmation(),
	})
}

// GetReceipt serves a downloadable plain-text acknowledgement
func (h *RegistrationHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	registrationID := mux.Vars(r)["registration_id"]

	registration, err := h.registrationRepo.FindByRegistrationID(registrationID)
	if err != nil {
		log.Printf("Failed to load registration: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if registration == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrRegistrationNotFound)
		return
	}

	var b strings.Builder
	b.WriteString("BHARAT AGRO FOUNDATION\n")
	b.WriteString("Registration Acknowledgement\n")
	b.WriteString("----------------------------------------\n")
	fmt.Fprintf(&b, "Registration ID : %s\n", registration.RegistrationID)
	fmt.Fprintf(&b, "Name            : %s\n", registration.Name)
	fmt.Fprintf(&b, "Program         : %s\n", registration.ProgramTitle)
	fmt.Fprintf(&b, "Fees            : Rs. %d\n", registration.ProgramFees)
	fmt.Fprintf(&b, "Payment Method  : %s\n", registration.Payment.PaymentMethod)
	fmt.Fprintf(&b, "Transaction ID  : %s\n", registration.Payment.TransactionID)
	fmt.Fprintf(&b, "Status          : %s\n", registration.Status)
	fmt.Fprintf(&b, "Submitted On    : %s\n", registration.RegistrationDate.Format("02 Jan 2006 15:04"))
	b.WriteString("----------------------------------------\n")
	b.WriteString("Keep this acknowledgement for your records.\n")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.txt", registration.RegistrationID))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(b.String()))
}

// ListRegistrations returns registrations for the admin review table,
// optionally filtered by ?status= and ?search=
func (h *RegistrationHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	filter := database.Filter{
		Status: r.URL.Query().Get("status"),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	registrations, err := h.registrationRepo.Find(filter)
	if err != nil {
		log.Printf("Failed to list registrations: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"count":         len(registrations),
		"registrations": registrations,
	})
}

// GetRegistration returns one full record for the admin detail view
func (h *RegistrationHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	registration, err := h.registrationRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load registration: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if registration == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrRegistrationNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"registration": *registration,
	})
}

// UpdateStatus applies an admin review decision.
// Rejecting frees the seat, approving a previously rejected record takes one back.
func (h *RegistrationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	var req models.UpdateRegistrationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	registration, err := h.registrationRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load registration: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if registration == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrRegistrationNotFound)
		return
	}

	if registration.Status == req.Status {
		utils.RespondSuccess(w, "Status unchanged", nil)
		return
	}

	// Leaving rejected means the seat has to be reacquired
	if registration.Status == models.StatusRejected && req.Status != models.StatusRejected {
		reserved, err := h.programRepo.ReserveSeat(registration.ProgramID)
		if err != nil {
			log.Printf("Failed to reserve seat: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
			return
		}
		if !reserved {
			utils.RespondError(w, http.StatusConflict, constants.ErrProgramFull)
			return
		}
	}

	set := bson.M{
		"status":      req.Status,
		"admin_notes": req.AdminNotes,
	}
	var unset bson.M

	if req.Status == models.StatusApproved {
		now := time.Now()
		set["approved_by"] = claims.Email
		set["approved_at"] = now
	} else {
		unset = bson.M{"approved_by": "", "approved_at": ""}
	}

	if err := h.registrationRepo.UpdateStatus(id, set, unset); err != nil {
		log.Printf("Failed to update status: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Entering rejected frees the seat for someone else
	if req.Status == models.StatusRejected && registration.Status != models.StatusRejected {
		if err := h.programRepo.ReleaseSeat(registration.ProgramID); err != nil {
			log.Printf("⚠️  Failed to release seat: %v", err)
		}
	}

	log.Printf("✓ Registration %s: %s -> %s (by %s)", registration.RegistrationID, registration.Status, req.Status, claims.Email)
	utils.RespondSuccess(w, "Status updated", map[string]interface{}{
		"registration_id": registration.RegistrationID,
		"status":          req.Status,
	})
}

// Export streams the filtered registrations as CSV
func (h *RegistrationHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	filter := database.Filter{
		Status: r.URL.Query().Get("status"),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	registrations, err := h.registrationRepo.Find(filter)
	if err != nil {
		log.Printf("Failed to list registrations: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=registrations-%s.csv", time.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)

	if err := writeRegistrationsCSV(w, registrations); err != nil {
		// Headers are gone, all we can do is log the broken download
		log.Printf("Failed to write CSV export: %v", err)
		return
	}

	log.Printf("✓ Exported %d registration(s) to CSV", len(registrations))
}

// writeRegistrationsCSV streams the review-table columns as CSV
func writeRegistrationsCSV(w io.Writer, registrations []models.Registration) error {
	writer := csv.NewWriter(w)

	writer.Write([]string{
		"Registration ID", "Name", "Email", "Mobile", "Father/Mother/Husband Name",
		"Aadhar Number", "Date of Birth", "Street", "City", "State", "PIN Code",
		"Program", "Fees", "Payment Method", "Transaction ID", "Status",
		"Admin Notes", "Registration Date",
	})

	for _, reg := range registrations {
		writer.Write([]string{
			reg.RegistrationID,
			reg.Name,
			reg.Email,
			reg.Mobile,
			reg.FatherMotherHusbandName,
			reg.AadharNumber,
			reg.DateOfBirth,
			reg.Address.Street,
			reg.Address.City,
			reg.Address.State,
			reg.Address.PinCode,
			reg.ProgramTitle,
			strconv.Itoa(reg.ProgramFees),
			reg.Payment.PaymentMethod,
			reg.Payment.TransactionID,
			reg.Status,
			reg.AdminNotes,
			reg.RegistrationDate.Format(time.RFC3339),
		})
	}

	writer.Flush()
	return writer.Error()
}

// Delete removes a registration and frees its seat unless it was already rejected
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidData)
	if !ok {
		return
	}

	registration, err := h.registrationRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load registration: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if registration == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrRegistrationNotFound)
		return
	}

	if err := h.registrationRepo.DeleteByID(id); err != nil {
		log.Printf("Failed to delete registration: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Rejected registrations already gave their seat back
	if registration.Status != models.StatusRejected {
		if err := h.programRepo.ReleaseSeat(registration.ProgramID); err != nil {
			log.Printf("⚠️  Failed to release seat: %v", err)
		}
	}

	log.Printf("✓ Registration deleted: %s", registration.RegistrationID)
	utils.RespondSuccess(w, "Registration deleted", nil)
}
