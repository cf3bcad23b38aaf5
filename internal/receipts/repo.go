package receipts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

// Repository handles receipt metadata persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to receipt operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a metadata row for an uploaded object.
func (r *Repository) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// ListByUser returns the user's receipt metadata, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error) {
	var out []models.Receipt
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
