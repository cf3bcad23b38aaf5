package history

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

// Repository handles the append-only equipment history table.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to history operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a single history row. Rows are never updated or deleted
// directly; they only disappear with their parent equipment record.
func (r *Repository) Append(ctx context.Context, entry models.EquipmentHistory) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// ListForEquipment returns the full history of one equipment item, newest
// first. The id tie-break keeps the order strict when parallel writes land
// with equal timestamps.
func (r *Repository) ListForEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.EquipmentHistory, error) {
	var entries []models.EquipmentHistory
	if err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("changed_at DESC").
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
