package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func fileHeader(filename, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   h,
		Size:     size,
	}
}

func TestCheckImageUpload(t *testing.T) {
	tests := []struct {
		name   string
		header *multipart.FileHeader
		wantOK bool
	}{
		{"jpeg", fileHeader("front.jpg", "image/jpeg", 1024), true},
		{"png", fileHeader("photo.png", "image/png", MaxUploadSize), true},
		{"too big", fileHeader("big.jpg", "image/jpeg", MaxUploadSize + 1), false},
		{"pdf", fileHeader("doc.pdf", "application/pdf", 1024), false},
		{"no type", fileHeader("file.bin", "", 1024), false},
		{"nil header", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := CheckImageUpload(tt.header)
			if (msg == "") != tt.wantOK {
				t.Errorf("CheckImageUpload() = %q, want ok=%v", msg, tt.wantOK)
			}
		})
	}
}
