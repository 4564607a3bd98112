package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/services"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// AlertHandler receives critical alerts from the admin frontend and fans
// them out to Slack and admin devices
type AlertHandler struct {
	alertRepo    *database.AlertRepository
	userRepo     *database.UserRepository
	fcmTokenRepo *database.FCMTokenRepository
	fcmService   *services.FCMService
	slackService *services.SlackService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(db *mongo.Database, fcmService *services.FCMService, slackService *services.SlackService) *AlertHandler {
	return &AlertHandler{
		alertRepo:    database.NewAlertRepository(db),
		userRepo:     database.NewUserRepository(db),
		fcmTokenRepo: database.NewFCMTokenRepository(db),
		fcmService:   fcmService,
		slackService: slackService,
	}
}

// SendCriticalAlert handles one alert report
func (h *AlertHandler) SendCriticalAlert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.CriticalAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	if len(req.ErrorMessage) > 500 {
		req.ErrorMessage = req.ErrorMessage[:500]
	}

	// Max 5 alerts per minute per admin
	count, err := h.alertRepo.CountRecentAlerts(req.AdminEmail, 1)
	if err != nil {
		log.Printf("Rate limit check failed: %v", err)
	}
	if count >= 5 {
		utils.RespondJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":       true,
			"message":     "Too many alerts, please wait",
			"retry_after": 60,
		})
		return
	}

	admin, err := h.userRepo.FindByEmail(req.AdminEmail)
	if err != nil || admin == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrUserNotFound)
		return
	}
	if admin.Admin != 1 {
		utils.RespondError(w, http.StatusForbidden, constants.ErrAdminOnly)
		return
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		timestamp = time.Now()
	}

	alert := &models.CriticalAlert{
		AdminEmail:     req.AdminEmail,
		ErrorType:      req.ErrorType,
		ErrorMessage:   req.ErrorMessage,
		EndpointFailed: req.EndpointFailed,
		Timestamp:      timestamp,
		UserAgent:      req.UserAgent,
	}

	if err := h.alertRepo.Create(alert); err != nil {
		log.Printf("Failed to save alert: %v", err)
	}

	if h.slackService != nil {
		h.slackService.SendCriticalError("POST", req.EndpointFailed, "500", req.ErrorMessage, "", req.UserAgent)
	}

	notificationSent := h.notifyAdminDevices(admin.Email, &req)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"message":           "Alert recorded",
		"notification_sent": notificationSent,
	})
}

// notifyAdminDevices pushes the alert to the reporting admin's devices
func (h *AlertHandler) notifyAdminDevices(adminEmail string, req *models.CriticalAlertRequest) bool {
	if h.fcmService == nil || !h.fcmService.Enabled() {
		return false
	}

	fcmTokens, err := h.fcmTokenRepo.FindByUserEmail(adminEmail)
	if err != nil {
		log.Printf("Failed to load admin FCM tokens: %v", err)
		return false
	}
	if len(fcmTokens) == 0 {
		return false
	}

	var tokens []string
	for _, t := range fcmTokens {
		tokens = append(tokens, t.Token)
	}

	title := "🚨 Critical alert - Site"
	body := fmt.Sprintf("%s: %s", req.ErrorType, req.ErrorMessage)
	data := map[string]string{
		"type":       "critical_error",
		"error_type": req.ErrorType,
		"endpoint":   req.EndpointFailed,
		"timestamp":  req.Timestamp,
	}

	success, failed, _ := h.fcmService.SendToAll(tokens, title, body, data)
	log.Printf("Critical alert pushed: %d ok, %d failed", success, failed)

	return success > 0
}
