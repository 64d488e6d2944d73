package helpers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxUploadSize caps each uploaded document at 5MB.
const MaxUploadSize = 5 << 20

// SaveUploadedImage validates and stores a multipart image under dir, returning
// the stored path relative to the server root (e.g. "uploads/<uuid>.png").
// Only image content types are accepted.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if file.Size > MaxUploadSize {
		return "", fmt.Errorf("file %s exceeds the 5MB size limit", file.Filename)
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files are allowed")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %v", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %v", err)
	}

	return filepath.ToSlash(dst), nil
}
