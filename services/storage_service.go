package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// StorageService uploads document images to Cloudinary
type StorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewStorageService creates a StorageService from a CLOUDINARY_URL
func NewStorageService(cloudinaryURL, folder string) (*StorageService, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	cld.Config.URL.Secure = true

	if folder == "" {
		folder = "baf"
	}

	log.Printf("✓ Cloudinary storage initialized (folder: %s)", folder)

	return &StorageService{
		cld:    cld,
		folder: folder,
	}, nil
}

// UploadedFile describes a stored document
type UploadedFile struct {
	URL      string
	PublicID string
	Bytes    int
}

// sanitizeFilename keeps the base name safe for a storage path
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	s := b.String()
	if s == "" {
		s = "file"
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// UploadDocument stores one registration document under a collision-proof path.
// The public ID pattern is {folder}/registrations/{timestamp}-{label}-{filename}-{random}.
func (s *StorageService) UploadDocument(ctx context.Context, file multipart.File, filename, label string) (*UploadedFile, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("registrations/%d-%s-%s-%s",
		time.Now().UnixMilli(),
		label,
		sanitizeFilename(filename),
		uuid.NewString()[:8],
	)

	overwrite := false
	result, err := s.cld.Upload.Upload(uploadCtx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       s.folder,
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", label, err)
	}

	log.Printf("✓ Uploaded %s (%d bytes): %s", label, result.Bytes, result.SecureURL)

	return &UploadedFile{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Bytes:    result.Bytes,
	}, nil
}

// UploadImage stores a gallery or site image under a named section
func (s *StorageService) UploadImage(ctx context.Context, file multipart.File, filename, section string) (*UploadedFile, error) {
	uploadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s/%d-%s-%s",
		section,
		time.Now().UnixMilli(),
		sanitizeFilename(filename),
		uuid.NewString()[:8],
	)

	result, err := s.cld.Upload.Upload(uploadCtx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       s.folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadedFile{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Bytes:    result.Bytes,
	}, nil
}

// DeleteByPublicID removes a stored asset, best effort
func (s *StorageService) DeleteByPublicID(ctx context.Context, publicID string) error {
	deleteCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := s.cld.Upload.Destroy(deleteCtx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", publicID, err)
	}

	return nil
}
