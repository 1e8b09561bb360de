package repositories

import (
	"context"
	"time"

	"companyhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// passwordResetRepository implements PasswordResetRepository interface
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create stores a new reset token row
func (r *passwordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// GetLatestByUserID returns the most recently issued reset row for a user
func (r *passwordResetRepository) GetLatestByUserID(ctx context.Context, userID string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// MarkUsed consumes a reset token
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("id = ?", id).
		Update("used_at", &now).Error
}

// InvalidateAllByUserID marks every outstanding reset row for the user
// as used, so only the latest issued token can ever be consumed.
func (r *passwordResetRepository) InvalidateAllByUserID(ctx context.Context, userID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.PasswordReset{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", &now).Error
}

// DeleteExpired removes rows past their window (cron maintenance)
func (r *passwordResetRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at <= ? OR used_at IS NOT NULL", time.Now()).
		Delete(&models.PasswordReset{}).Error
}
