package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
)

// Service defines the behavior needed by the dashboard controller.
type Service interface {
	Overview(ctx context.Context, userID uuid.UUID) (*Overview, error)
}

type subscriptionLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error)
}

type equipmentLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Equipment, error)
}

type service struct {
	subscriptions subscriptionLister
	equipment     equipmentLister
	now           func() time.Time
}

// NewService constructs a dashboard service over the two listers.
func NewService(subscriptions subscriptionLister, equipment equipmentLister) (Service, error) {
	if subscriptions == nil {
		return nil, fmt.Errorf("subscription lister is required")
	}
	if equipment == nil {
		return nil, fmt.Errorf("equipment lister is required")
	}
	return &service{
		subscriptions: subscriptions,
		equipment:     equipment,
		now:           time.Now,
	}, nil
}

func (s *service) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	subs, err := s.subscriptions.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list subscriptions")
	}
	items, err := s.equipment.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list equipment")
	}

	now := s.now()
	today := dbtypes.DateOf(now)

	hardware, hardwareTotal := EquipmentValueByCategory(items)

	return &Overview{
		TotalMonthlySpend:       TotalMonthlySpend(subs).StringFixed(2),
		SpendingByCategory:      toSlices(SpendingByCategory(subs)),
		HardwareValueByCategory: toSlices(hardware),
		TotalHardwareValue:      hardwareTotal.StringFixed(2),
		UpcomingRenewals:        toRenewalItems(UpcomingRenewals(subs, today)),
		RecentAdditions:         RecentAdditions(subs, items, now),
		SubscriptionCount:       len(subs),
		EquipmentCount:          len(items),
	}, nil
}
