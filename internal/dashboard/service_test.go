package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

type stubSubscriptionLister struct {
	subs []models.Subscription
}

func (s *stubSubscriptionLister) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Subscription, error) {
	return s.subs, nil
}

type stubEquipmentLister struct {
	items []models.Equipment
}

func (s *stubEquipmentLister) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Equipment, error) {
	return s.items, nil
}

func TestOverviewAssemblesFullPayload(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	today := dbtypes.DateOf(now)

	subs := []models.Subscription{
		{
			ID:           uuid.New(),
			Name:         "Figma",
			Cost:         decimal.RequireFromString("45.00"),
			BillingCycle: enums.BillingCycleMonthly,
			Status:       enums.SubscriptionStatusActive,
			RenewalDate:  today.AddDays(10),
			CreatedAt:    now.AddDate(0, 0, -1),
		},
		{
			ID:           uuid.New(),
			Name:         "GitHub",
			Cost:         decimal.RequireFromString("120.00"),
			BillingCycle: enums.BillingCycleAnnual,
			Status:       enums.SubscriptionStatusCancelled,
			RenewalDate:  today.AddDays(5),
			CreatedAt:    now.AddDate(0, 0, -30),
		},
	}
	value := decimal.RequireFromString("2500.00")
	items := []models.Equipment{
		{
			ID:           uuid.New(),
			ItemName:     "MacBook",
			Value:        &value,
			Availability: enums.AvailabilityAssigned,
			CreatedAt:    now.AddDate(0, 0, -3),
		},
	}

	svc, err := NewService(&stubSubscriptionLister{subs: subs}, &stubEquipmentLister{items: items})
	require.NoError(t, err)
	svc.(*service).now = func() time.Time { return now }

	overview, err := svc.Overview(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "55.00", overview.TotalMonthlySpend)
	assert.Equal(t, "2500.00", overview.TotalHardwareValue)
	assert.Equal(t, 2, overview.SubscriptionCount)
	assert.Equal(t, 1, overview.EquipmentCount)
	assert.Equal(t, 2, overview.RecentAdditions)

	require.Len(t, overview.UpcomingRenewals, 1, "cancelled renewal excluded")
	assert.Equal(t, "Figma", overview.UpcomingRenewals[0].Name)
	assert.Equal(t, "45.00", overview.UpcomingRenewals[0].Cost)

	require.Len(t, overview.SpendingByCategory, 1)
	assert.Equal(t, DefaultSubscriptionCategory, overview.SpendingByCategory[0].Category)
	assert.Equal(t, "45.00", overview.SpendingByCategory[0].Amount)

	require.Len(t, overview.HardwareValueByCategory, 1)
	assert.Equal(t, DefaultEquipmentCategory, overview.HardwareValueByCategory[0].Category)
}
