package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
)

// LogEntryRequest is the payload accepted by the explicit history endpoint.
type LogEntryRequest struct {
	EquipmentID  string  `json:"equipment_id" validate:"required,uuid"`
	FieldChanged string  `json:"field_changed" validate:"required,max=100"`
	OldValue     *string `json:"old_value,omitempty"`
	NewValue     *string `json:"new_value,omitempty"`
}

// Service defines the behavior needed by the history controller.
type Service interface {
	Log(ctx context.Context, userID uuid.UUID, req LogEntryRequest) (*models.EquipmentHistory, error)
	ListForEquipment(ctx context.Context, userID, equipmentID uuid.UUID) ([]models.EquipmentHistory, error)
}

type repository interface {
	Append(ctx context.Context, entry models.EquipmentHistory) error
	ListForEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.EquipmentHistory, error)
}

type equipmentFinder interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error)
}

type service struct {
	repo      repository
	equipment equipmentFinder
}

// NewService constructs a history service. The equipment finder enforces
// ownership before any history is read or written.
func NewService(repo repository, equipment equipmentFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("history repository is required")
	}
	if equipment == nil {
		return nil, fmt.Errorf("equipment finder is required")
	}
	return &service{repo: repo, equipment: equipment}, nil
}

func (s *service) Log(ctx context.Context, userID uuid.UUID, req LogEntryRequest) (*models.EquipmentHistory, error) {
	equipmentID, err := uuid.Parse(strings.TrimSpace(req.EquipmentID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "equipment_id must be a UUID")
	}

	if _, err := s.equipment.FindByID(ctx, userID, equipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load equipment")
	}

	entry := models.EquipmentHistory{
		EquipmentID:  equipmentID,
		UserID:       userID,
		FieldChanged: strings.TrimSpace(req.FieldChanged),
		OldValue:     req.OldValue,
		NewValue:     req.NewValue,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append history")
	}
	return &entry, nil
}

func (s *service) ListForEquipment(ctx context.Context, userID, equipmentID uuid.UUID) ([]models.EquipmentHistory, error) {
	if _, err := s.equipment.FindByID(ctx, userID, equipmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load equipment")
	}

	entries, err := s.repo.ListForEquipment(ctx, equipmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list history")
	}
	return entries, nil
}
