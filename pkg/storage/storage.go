package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxImageSize is the upload ceiling for product images (5MB).
	MaxImageSize = 5 * 1024 * 1024
)

// allowedImageTypes maps permitted file extensions to their content types.
var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// Storage stores uploaded product images and resolves URLs for them.
type Storage interface {
	// Upload stores the file and returns the storage key.
	Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)

	// URL resolves a storage key to a URL the storefront can load.
	URL(ctx context.Context, key string) (string, error)

	// Delete removes a stored file. Deleting an empty key is a no-op.
	Delete(ctx context.Context, key string) error
}

// UploadError represents an upload validation failure
type UploadError struct {
	Code    string
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

// ValidateImage checks the size and extension of an uploaded image and
// returns its content type.
func ValidateImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxImageSize {
		return "", &UploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return "", &UploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only png, jpg, jpeg and webp files are allowed",
		}
	}

	return contentType, nil
}
