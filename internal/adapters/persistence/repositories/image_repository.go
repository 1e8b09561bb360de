package repositories

import (
	"context"

	"companyhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// imageRepository implements ImageRepository interface
type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

// Create creates a new image row
func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetByID gets an image by ID
func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// Delete deletes an image row
func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Image{}, id).Error
}

// ListByEmployeeID lists images belonging to an employee
func (r *imageRepository) ListByEmployeeID(ctx context.Context, employeeID uint) ([]*models.Image, error) {
	var images []*models.Image
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Find(&images).Error
	return images, err
}
