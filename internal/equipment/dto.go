package equipment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

// CreateEquipmentRequest is the payload for adding an equipment item.
type CreateEquipmentRequest struct {
	ItemName     string  `json:"item_name" validate:"required,max=200"`
	SerialNumber *string `json:"serial_number,omitempty" validate:"omitempty,max=200"`
	PurchaseDate *string `json:"purchase_date,omitempty"`
	Value        *string `json:"value,omitempty"`
	Condition    *string `json:"condition,omitempty" validate:"omitempty,max=200"`
	AssignedTo   *string `json:"assigned_to,omitempty" validate:"omitempty,max=200"`
	Availability string  `json:"availability" validate:"required,oneof=assigned storage repair"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=200"`
	ReceiptURL   *string `json:"receipt_url,omitempty" validate:"omitempty,url"`
}

// UpdateEquipmentRequest mirrors the create payload for full replacement.
type UpdateEquipmentRequest struct {
	ItemName     string  `json:"item_name" validate:"required,max=200"`
	SerialNumber *string `json:"serial_number,omitempty" validate:"omitempty,max=200"`
	PurchaseDate *string `json:"purchase_date,omitempty"`
	Value        *string `json:"value,omitempty"`
	Condition    *string `json:"condition,omitempty" validate:"omitempty,max=200"`
	AssignedTo   *string `json:"assigned_to,omitempty" validate:"omitempty,max=200"`
	Availability string  `json:"availability" validate:"required,oneof=assigned storage repair"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=200"`
	ReceiptURL   *string `json:"receipt_url,omitempty" validate:"omitempty,url"`
}

// CreateEquipmentDTO is the validated shape handed to the repository.
type CreateEquipmentDTO struct {
	UserID       uuid.UUID
	ItemName     string
	SerialNumber *string
	PurchaseDate *dbtypes.Date
	Value        *decimal.Decimal
	Condition    *string
	AssignedTo   *string
	Availability enums.Availability
	Category     *string
	ReceiptURL   *string
}

func (c CreateEquipmentDTO) ToModel() *models.Equipment {
	return &models.Equipment{
		UserID:       c.UserID,
		ItemName:     c.ItemName,
		SerialNumber: c.SerialNumber,
		PurchaseDate: c.PurchaseDate,
		Value:        c.Value,
		Condition:    c.Condition,
		AssignedTo:   c.AssignedTo,
		Availability: c.Availability,
		Category:     c.Category,
		ReceiptURL:   c.ReceiptURL,
	}
}

// ListFilter captures the query parameters applied to the in-memory list.
type ListFilter struct {
	Query        string
	Availability string
	Category     string
}
