package utils

import (
	"io"
	"lms/config"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under the configured upload
// directory and returns its path relative to that directory.
func SaveUploadedFile(file *multipart.FileHeader, subDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(destDir, newFilename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.Join(subDir, newFilename), nil
}

// DeleteUploadedFile removes a previously stored file. Deletion is
// best-effort: a missing path is not an error.
func DeleteUploadedFile(path string) {
	if path == "" {
		return
	}
	fullPath := filepath.Join(config.AppConfig.UploadDir, path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete uploaded file %s: %v", fullPath, err)
	}
}

// GetFileURL returns the public URL for a stored file path
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.ToSlash(filePath)
}
