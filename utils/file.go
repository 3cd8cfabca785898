package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

var (
	ErrFileTooLarge    = errors.New("file size exceeds maximum allowed size")
	ErrInvalidFileType = errors.New("invalid file type. Only images are allowed")
)

func ValidateImageFile(fileHeader *multipart.FileHeader, maxSize int64) error {
	if maxSize > 0 && fileHeader.Size > maxSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return ErrInvalidFileType
	}
	return nil
}

// SaveImageFile stores an uploaded image under uploadDir/subDir and returns its public path.
func SaveImageFile(fileHeader *multipart.FileHeader, uploadDir, subDir string) (string, error) {
	uploadPath := filepath.Join(uploadDir, subDir)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(uploadPath, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + filepath.ToSlash(filepath.Join(subDir, filename)), nil
}

// DeleteFile removes a file previously returned by SaveImageFile. Foreign URLs are ignored.
func DeleteFile(uploadDir, publicPath string) error {
	if !strings.HasPrefix(publicPath, "/uploads/") {
		return nil
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(publicPath, "/uploads/")))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return nil
	}
	fullPath := filepath.Join(uploadDir, rel)
	if _, err := os.Stat(fullPath); err == nil {
		return os.Remove(fullPath)
	}
	return nil
}
