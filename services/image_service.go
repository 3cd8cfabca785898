package services

import (
	"context"
	"io"
	"log"
	"mime/multipart"

	"techshop/models"
	"techshop/utils"
)

// ImageUploader stores an image somewhere public and returns its URL.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (url string, publicID string, err error)
}

// ImageService attaches uploaded images to catalog products. Without a remote uploader,
// images are kept in the local upload directory.
type ImageService struct {
	catalog   *CatalogService
	uploader  ImageUploader
	uploadDir string
	maxSize   int64
}

func NewImageService(catalog *CatalogService, uploader ImageUploader, uploadDir string, maxSize int64) *ImageService {
	return &ImageService{catalog: catalog, uploader: uploader, uploadDir: uploadDir, maxSize: maxSize}
}

func (s *ImageService) UploadProductImage(ctx context.Context, id int64, fileHeader *multipart.FileHeader) (models.Product, error) {
	existing, ok := s.catalog.Product(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	if err := utils.ValidateImageFile(fileHeader, s.maxSize); err != nil {
		return models.Product{}, err
	}

	url, local, err := s.store(ctx, fileHeader)
	if err != nil {
		return models.Product{}, err
	}

	updated, err := s.catalog.UpdateProduct(ctx, id, models.ProductPatch{Image: &url})
	if err != nil {
		if local {
			utils.DeleteFile(s.uploadDir, url)
		}
		return models.Product{}, err
	}

	if existing.Image != url {
		if err := utils.DeleteFile(s.uploadDir, existing.Image); err != nil {
			log.Printf("Failed to remove old image %s: %v", existing.Image, err)
		}
	}
	return updated, nil
}

func (s *ImageService) store(ctx context.Context, fileHeader *multipart.FileHeader) (string, bool, error) {
	if s.uploader == nil {
		url, err := utils.SaveImageFile(fileHeader, s.uploadDir, "products")
		return url, true, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", false, err
	}
	defer file.Close()

	url, _, err := s.uploader.Upload(ctx, file, fileHeader.Filename)
	return url, false, err
}
