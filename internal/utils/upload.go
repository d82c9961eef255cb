package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaveUpload stores an uploaded file under dir/subdir with a random name,
// keeping the original extension, and returns the relative path to persist.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, dir, subdir string) (string, error) {
	target := filepath.Join(dir, subdir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(target, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	return filepath.Join(subdir, name), nil
}
