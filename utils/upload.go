package utils

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// MaxUploadSize caps each uploaded document image at 5 MB
const MaxUploadSize = 5 << 20

// CheckImageUpload validates an uploaded file header.
// Returns an empty string when the file is acceptable, otherwise the
// error message to send back to the client.
func CheckImageUpload(header *multipart.FileHeader) string {
	if header == nil {
		return "No file provided"
	}

	if header.Size > MaxUploadSize {
		return fmt.Sprintf("File %s exceeds the 5 MB limit", header.Filename)
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Sprintf("File %s is not an image", header.Filename)
	}

	return ""
}
