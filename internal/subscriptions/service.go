package subscriptions

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

// Service defines the behavior needed by the subscriptions controller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Subscription, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateSubscriptionRequest) (*models.Subscription, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateSubscriptionRequest) (*models.Subscription, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, dto CreateSubscriptionDTO) (*models.Subscription, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type service struct {
	repo repository
}

// NewService constructs a subscriptions service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscriptions repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.Subscription, error) {
	subs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list subscriptions")
	}
	return ApplyFilter(subs, filter), nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load subscription")
	}
	return sub, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateSubscriptionRequest) (*models.Subscription, error) {
	dto, err := buildCreateDTO(userID, req)
	if err != nil {
		return nil, err
	}
	sub, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create subscription")
	}
	return sub, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateSubscriptionRequest) (*models.Subscription, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	cost, err := parseCost(req.Cost)
	if err != nil {
		return nil, err
	}
	cycle, err := enums.ParseBillingCycle(req.BillingCycle)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing cycle")
	}
	status, err := enums.ParseSubscriptionStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	renewal, err := dbtypes.ParseDate(req.RenewalDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "renewal_date must be YYYY-MM-DD")
	}

	sub.Name = strings.TrimSpace(req.Name)
	sub.Cost = cost
	sub.BillingCycle = cycle
	sub.RenewalDate = renewal
	sub.Status = status
	sub.Owner = trimOptional(req.Owner)
	sub.Team = trimOptional(req.Team)
	sub.Category = trimOptional(req.Category)
	sub.InvoiceURL = req.InvoiceURL

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update subscription")
	}
	return sub, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete subscription")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
	}
	return nil
}

func buildCreateDTO(userID uuid.UUID, req CreateSubscriptionRequest) (CreateSubscriptionDTO, error) {
	cost, err := parseCost(req.Cost)
	if err != nil {
		return CreateSubscriptionDTO{}, err
	}
	cycle, err := enums.ParseBillingCycle(req.BillingCycle)
	if err != nil {
		return CreateSubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing cycle")
	}
	renewal, err := dbtypes.ParseDate(req.RenewalDate)
	if err != nil {
		return CreateSubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "renewal_date must be YYYY-MM-DD")
	}

	status := enums.SubscriptionStatusActive
	if req.Status != "" {
		status, err = enums.ParseSubscriptionStatus(req.Status)
		if err != nil {
			return CreateSubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
	}

	return CreateSubscriptionDTO{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Cost:         cost,
		BillingCycle: cycle,
		RenewalDate:  renewal,
		Status:       status,
		Owner:        trimOptional(req.Owner),
		Team:         trimOptional(req.Team),
		Category:     trimOptional(req.Category),
		InvoiceURL:   req.InvoiceURL,
	}, nil
}

func parseCost(raw string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "cost must be a decimal number")
	}
	if cost.IsNegative() {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}
	return cost, nil
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
