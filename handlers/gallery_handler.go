package handlers

import (
	"encoding/json"
	"log"
	"net/http"
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

// GalleryHandler serves the public gallery and its admin management endpoints
type GalleryHandler struct {
	galleryRepo *database.GalleryRepository
	storage     *services.StorageService
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(db *mongo.Database, storage *services.StorageService) *GalleryHandler {
	return &GalleryHandler{
		galleryRepo: database.NewGalleryRepository(db),
		storage:     storage,
	}
}

// ListImages returns the gallery, optionally filtered by ?category=
func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))

	images, err := h.galleryRepo.Find(category)
	if err != nil {
		log.Printf("Failed to list gallery images: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"images":  images,
	})
}

// UploadImage stores a new gallery image (admin)
func (h *GalleryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if h.storage == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "File storage not configured")
		return
	}

	claims := getClaims(r)
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if msg := utils.CheckImageUpload(header); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	category := strings.TrimSpace(r.FormValue("category"))
	if title == "" || category == "" {
		utils.RespondError(w, http.StatusBadRequest, "title and category are required")
		return
	}

	uploaded, err := h.storage.UploadImage(r.Context(), file, header.Filename, "gallery")
	if err != nil {
		log.Printf("Failed to upload gallery image: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrUploadFailed)
		return
	}

	image := &models.GalleryImage{
		Title:       title,
		Category:    category,
		URL:         uploaded.URL,
		StoragePath: uploaded.PublicID,
		Filename:    header.Filename,
		Size:        header.Size,
		UploadedBy:  claims.Email,
	}

	if err := h.galleryRepo.Create(image); err != nil {
		log.Printf("Failed to save gallery image: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Gallery image uploaded: %s (%s)", image.Title, image.ID.Hex())
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"image":   *image,
	})
}

// UpdateImage edits image metadata (admin)
func (h *GalleryHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidImageID)
	if !ok {
		return
	}

	existing, err := h.galleryRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load gallery image: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if existing == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrImageNotFound)
		return
	}

	var req models.UpdateGalleryImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidData)
		return
	}

	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}

	if len(update) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if err := h.galleryRepo.Update(id, update); err != nil {
		log.Printf("Failed to update gallery image: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	utils.RespondSuccess(w, "Image updated", nil)
}

// DeleteImage removes an image from the gallery and from storage (admin)
func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id, ok := ParseObjectIDVar(w, mux.Vars(r), "id", constants.ErrInvalidImageID)
	if !ok {
		return
	}

	image, err := h.galleryRepo.FindByID(id)
	if err != nil {
		log.Printf("Failed to load gallery image: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if image == nil {
		utils.RespondError(w, http.StatusNotFound, constants.ErrImageNotFound)
		return
	}

	if err := h.galleryRepo.Delete(id); err != nil {
		log.Printf("Failed to delete gallery image: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	// Best effort, the DB record is already gone
	if h.storage != nil && image.StoragePath != "" {
		if err := h.storage.DeleteByPublicID(r.Context(), image.StoragePath); err != nil {
			log.Printf("⚠️  Failed to delete stored asset: %v", err)
		}
	}

	log.Printf("✓ Gallery image deleted: %s", image.Title)
	utils.RespondSuccess(w, "Image deleted", nil)
}
