package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage stores product images on the local filesystem. Used in
// development and tests, where no bucket is configured.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates a filesystem-backed storage rooted at dir
func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: baseURL}
}

// Upload validates the image and writes it under a unique name
func (s *LocalStorage) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if _, err := ValidateImage(fileHeader); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	key := uuid.New().String() + filepath.Ext(fileHeader.Filename)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return key, nil
}

// URL joins the configured base URL with the key
func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the file behind the key
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
