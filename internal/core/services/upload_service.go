package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"companyhub/internal/adapters/persistence/models"
	"companyhub/internal/adapters/persistence/repositories"
	"companyhub/internal/config"
	"companyhub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadService stores employee images on local disk and tracks them in
// the images table.
type UploadService struct {
	imageRepo    repositories.ImageRepository
	employeeRepo repositories.EmployeeRepository
	cfg          config.UploadConfig
}

// NewUploadService creates a new upload service and ensures the upload
// directory exists.
func NewUploadService(imageRepo repositories.ImageRepository, employeeRepo repositories.EmployeeRepository, cfg config.UploadConfig) (*UploadService, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadService{
		imageRepo:    imageRepo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
	}, nil
}

// SaveEmployeeImage validates and stores a .jpg upload for an employee.
// Files are renamed to a fresh UUID so client names never touch disk.
func (s *UploadService) SaveEmployeeImage(ctx context.Context, employeeID uint, file *multipart.FileHeader) (*models.Image, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	if file == nil || file.Size == 0 {
		return nil, domain.NewValidationError("File is empty.")
	}
	if file.Size > s.cfg.MaxFileSize {
		return nil, domain.NewValidationError(fmt.Sprintf("File size exceeds the maximum limit of %dMB.", s.cfg.MaxFileSize/(1024*1024)))
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".jpg" {
		return nil, domain.NewValidationError("Only .jpg files are allowed.")
	}

	fileName := uuid.New().String() + ".jpg"
	if err := s.writeFile(file, filepath.Join(s.cfg.Dir, fileName)); err != nil {
		return nil, err
	}

	image := &models.Image{
		ImagePath:  fileName,
		EmployeeID: employeeID,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Keep disk and table consistent on a failed insert.
		os.Remove(filepath.Join(s.cfg.Dir, fileName))
		return nil, err
	}

	return image, nil
}

// ListEmployeeImages lists the stored images for an employee
func (s *UploadService) ListEmployeeImages(ctx context.Context, employeeID uint) ([]*models.Image, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return s.imageRepo.ListByEmployeeID(ctx, employeeID)
}

// DeleteEmployeeImage removes an image row and its file
func (s *UploadService) DeleteEmployeeImage(ctx context.Context, imageID uint) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrImageNotFound
		}
		return err
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	path := filepath.Join(s.cfg.Dir, image.ImagePath)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *UploadService) writeFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
