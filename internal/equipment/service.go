package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
)

// Service defines the behavior needed by the equipment controller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Equipment, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*models.Equipment, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateEquipmentRequest) (*models.Equipment, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateEquipmentRequest) (*models.Equipment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, dto CreateEquipmentDTO) (*models.Equipment, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error)
	FindByIDAnyOwner(ctx context.Context, id uuid.UUID) (*models.Equipment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Equipment, error)
	Update(ctx context.Context, item *models.Equipment) error
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type service struct {
	repo    repository
	auditor *AuditRecorder
}

// NewService constructs an equipment service. The auditor may be nil, which
// disables history recording.
func NewService(repo repository, auditor *AuditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("equipment repository is required")
	}
	return &service{repo: repo, auditor: auditor}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Equipment, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list equipment")
	}
	return ApplyFilter(items, filter), nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load equipment")
	}
	return item, nil
}

// GetPublic loads a record without an owner filter. Serves the label view
// reached from a printed QR code, which carries no credentials.
func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	item, err := s.repo.FindByIDAnyOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load equipment")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateEquipmentRequest) (*models.Equipment, error) {
	dto, err := buildCreateDTO(userID, req)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create equipment")
	}
	return item, nil
}

// Update applies a full replacement, then records history for the tracked
// fields that changed. Concurrent updates are last-writer-wins; the audit
// rows are written asynchronously after the row is saved.
func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateEquipmentRequest) (*models.Equipment, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := *item

	availability, err := enums.ParseAvailability(req.Availability)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid availability")
	}
	value, err := parseOptionalValue(req.Value)
	if err != nil {
		return nil, err
	}
	purchase, err := parseOptionalDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	item.ItemName = strings.TrimSpace(req.ItemName)
	item.SerialNumber = trimOptional(req.SerialNumber)
	item.PurchaseDate = purchase
	item.Value = value
	item.Condition = trimOptional(req.Condition)
	item.AssignedTo = trimOptional(req.AssignedTo)
	item.Availability = availability
	item.Category = trimOptional(req.Category)
	item.ReceiptURL = req.ReceiptURL

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update equipment")
	}

	if entries := ComputeAuditDiff(&before, item); len(entries) > 0 {
		s.auditor.Dispatch(ctx, entries)
	}

	return item, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete equipment")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
	}
	return nil
}

func buildCreateDTO(userID uuid.UUID, req CreateEquipmentRequest) (CreateEquipmentDTO, error) {
	availability, err := enums.ParseAvailability(req.Availability)
	if err != nil {
		return CreateEquipmentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid availability")
	}
	value, err := parseOptionalValue(req.Value)
	if err != nil {
		return CreateEquipmentDTO{}, err
	}
	purchase, err := parseOptionalDate(req.PurchaseDate)
	if err != nil {
		return CreateEquipmentDTO{}, err
	}

	return CreateEquipmentDTO{
		UserID:       userID,
		ItemName:     strings.TrimSpace(req.ItemName),
		SerialNumber: trimOptional(req.SerialNumber),
		PurchaseDate: purchase,
		Value:        value,
		Condition:    trimOptional(req.Condition),
		AssignedTo:   trimOptional(req.AssignedTo),
		Availability: availability,
		Category:     trimOptional(req.Category),
		ReceiptURL:   req.ReceiptURL,
	}, nil
}

func parseOptionalValue(raw *string) (*decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must be a decimal number")
	}
	if value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must not be negative")
	}
	return &value, nil
}

func parseOptionalDate(raw *string) (*dbtypes.Date, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	date, err := dbtypes.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase_date must be YYYY-MM-DD")
	}
	return &date, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
