package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

// Equipment is one owned hardware item tracked by a user.
type Equipment struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	ItemName     string             `gorm:"column:item_name;not null" json:"item_name"`
	SerialNumber *string            `gorm:"column:serial_number" json:"serial_number,omitempty"`
	PurchaseDate *dbtypes.Date      `gorm:"column:purchase_date" json:"purchase_date,omitempty"`
	Value        *decimal.Decimal   `gorm:"column:value;type:numeric(12,2)" json:"value,omitempty"`
	Condition    *string            `gorm:"column:condition" json:"condition,omitempty"`
	AssignedTo   *string            `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	Availability enums.Availability `gorm:"column:availability;not null" json:"availability"`
	Category     *string            `gorm:"column:category" json:"category,omitempty"`
	ReceiptURL   *string            `gorm:"column:receipt_url" json:"receipt_url,omitempty"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	History []EquipmentHistory `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE" json:"-"`
}
