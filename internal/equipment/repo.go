package equipment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

// Repository handles equipment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to equipment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new equipment row.
func (r *Repository) Create(ctx context.Context, dto CreateEquipmentDTO) (*models.Equipment, error) {
	item := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads an equipment item owned by the provided user.
func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error) {
	var item models.Equipment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDAnyOwner loads an equipment item by id regardless of owner. Serves
// the unauthenticated label view.
func (r *Repository) FindByIDAnyOwner(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	var item models.Equipment
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByUser returns the user's full equipment set, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Equipment, error) {
	var items []models.Equipment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update saves the provided equipment item.
func (r *Repository) Update(ctx context.Context, item *models.Equipment) error {
	if item == nil {
		return fmt.Errorf("equipment is required")
	}
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an equipment item owned by the provided user. The FK cascade
// removes its history rows.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Equipment{})
	return result.RowsAffected, result.Error
}
