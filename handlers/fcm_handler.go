package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"baf-backend/constants"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/services"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// FCMHandler manages admin push-notification subscriptions
type FCMHandler struct {
	fcmService *services.FCMService
	tokenRepo  *database.FCMTokenRepository
	vapidKey   string
}

// NewFCMHandler creates a new FCMHandler
func NewFCMHandler(db *mongo.Database, fcmService *services.FCMService, vapidKey string) *FCMHandler {
	return &FCMHandler{
		fcmService: fcmService,
		tokenRepo:  database.NewFCMTokenRepository(db),
		vapidKey:   vapidKey,
	}
}

// GetVAPIDKey returns the public web push key the browser client
// needs to request an FCM token
func (h *FCMHandler) GetVAPIDKey(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if h.vapidKey == "" {
		utils.RespondError(w, http.StatusServiceUnavailable, "Push notifications not configured")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"vapid_key": h.vapidKey,
	})
}

// Subscribe registers the authenticated admin's device token
func (h *FCMHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	claims := getClaims(r)
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondValidationErrors(w, utils.FieldErrors(err))
		return
	}

	token := &models.FCMToken{
		UserEmail: claims.Email,
		Token:     req.Token,
		Device:    req.Device,
	}

	if err := h.tokenRepo.Upsert(token); err != nil {
		log.Printf("Failed to save FCM token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ FCM token registered for %s", claims.Email)
	utils.RespondSuccess(w, "Subscribed to notifications", nil)
}

// Unsubscribe removes a device token
func (h *FCMHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Token string `json:"token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	if req.Token == "" {
		utils.RespondError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.tokenRepo.DeleteByToken(req.Token); err != nil {
		log.Printf("Failed to delete FCM token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Println("✓ FCM token removed")
	utils.RespondSuccess(w, "Unsubscribed from notifications", nil)
}

// TestNotification sends a test push to every registered device (admin)
func (h *FCMHandler) TestNotification(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if h.fcmService == nil || !h.fcmService.Enabled() {
		utils.RespondError(w, http.StatusServiceUnavailable, "Push notifications not configured")
		return
	}

	allTokens, err := h.tokenRepo.FindAll()
	if err != nil {
		log.Printf("Failed to load FCM tokens: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	if len(allTokens) == 0 {
		utils.RespondSuccess(w, "No subscribed devices", map[string]interface{}{
			"sent": 0,
		})
		return
	}

	var tokens []string
	for _, t := range allTokens {
		tokens = append(tokens, t.Token)
	}

	success, failed, failedTokens := h.fcmService.SendToAll(tokens, "Test notification", "Push notifications are working", map[string]string{
		"type": "test",
	})

	// Prune tokens FCM no longer accepts
	for _, token := range failedTokens {
		if err := h.tokenRepo.DeleteByToken(token); err != nil {
			log.Printf("Failed to prune token: %v", err)
		}
	}

	utils.RespondSuccess(w, "Test notification sent", map[string]interface{}{
		"sent":   success,
		"failed": failed,
	})
}
