package dashboard

import (
	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
)

// CategorySlice is one labeled amount rendered to two decimal places.
type CategorySlice struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// RenewalItem is one upcoming renewal row.
type RenewalItem struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Cost        string       `json:"cost"`
	RenewalDate dbtypes.Date `json:"renewal_date"`
}

// Overview is the full dashboard payload.
type Overview struct {
	TotalMonthlySpend       string          `json:"total_monthly_spend"`
	SpendingByCategory      []CategorySlice `json:"spending_by_category"`
	HardwareValueByCategory []CategorySlice `json:"hardware_value_by_category"`
	TotalHardwareValue      string          `json:"total_hardware_value"`
	UpcomingRenewals        []RenewalItem   `json:"upcoming_renewals"`
	RecentAdditions         int             `json:"recent_additions"`
	SubscriptionCount       int             `json:"subscription_count"`
	EquipmentCount          int             `json:"equipment_count"`
}

func toSlices(amounts []CategoryAmount) []CategorySlice {
	out := make([]CategorySlice, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, CategorySlice{
			Category: a.Category,
			Amount:   a.Amount.StringFixed(2),
		})
	}
	return out
}

func toRenewalItems(subs []models.Subscription) []RenewalItem {
	out := make([]RenewalItem, 0, len(subs))
	for _, sub := range subs {
		out = append(out, RenewalItem{
			ID:          sub.ID,
			Name:        sub.Name,
			Cost:        sub.Cost.StringFixed(2),
			RenewalDate: sub.RenewalDate,
		})
	}
	return out
}
