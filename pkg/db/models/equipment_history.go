package models

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentHistory is one append-only audit row capturing a single field's
// before/after value on an equipment update. Rows are never mutated and only
// disappear via cascade when the parent equipment record is deleted.
type EquipmentHistory struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EquipmentID  uuid.UUID `gorm:"column:equipment_id;type:uuid;not null;index" json:"equipment_id"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	FieldChanged string    `gorm:"column:field_changed;not null" json:"field_changed"`
	OldValue     *string   `gorm:"column:old_value" json:"old_value"`
	NewValue     *string   `gorm:"column:new_value" json:"new_value"`
	ChangedAt    time.Time `gorm:"column:changed_at;autoCreateTime" json:"changed_at"`
}
