package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	dbtypes "github.com/opsdeskhq/opsdesk-backend/pkg/db/types"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

const (
	// DefaultSubscriptionCategory labels uncategorized subscription spend.
	DefaultSubscriptionCategory = "Uncategorized"
	// DefaultEquipmentCategory labels uncategorized hardware value.
	DefaultEquipmentCategory = "Other"

	renewalWindowDays  = 30
	recentWindowInDays = 7
)

var monthsPerYear = decimal.NewFromInt(12)

// CategoryAmount is one labeled slice of an aggregation.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyEquivalent normalizes a subscription's cost to a monthly figure.
// Annual costs divide by 12 at full decimal precision; rounding happens only
// when the result is rendered.
func MonthlyEquivalent(sub models.Subscription) decimal.Decimal {
	if sub.BillingCycle == enums.BillingCycleAnnual {
		return sub.Cost.Div(monthsPerYear)
	}
	return sub.Cost
}

// TotalMonthlySpend sums the monthly-equivalent cost of every subscription,
// regardless of status.
func TotalMonthlySpend(subs []models.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, sub := range subs {
		total = total.Add(MonthlyEquivalent(sub))
	}
	return total
}

// SpendingByCategory groups monthly-equivalent spend by category for active
// subscriptions only. Cancelled and trial rows still count toward
// TotalMonthlySpend but are excluded here.
func SpendingByCategory(subs []models.Subscription) []CategoryAmount {
	byCategory := map[string]decimal.Decimal{}
	for _, sub := range subs {
		if sub.Status != enums.SubscriptionStatusActive {
			continue
		}
		label := categoryLabel(sub.Category, DefaultSubscriptionCategory)
		byCategory[label] = byCategory[label].Add(MonthlyEquivalent(sub))
	}
	return sortedByAmount(byCategory)
}

// EquipmentValueByCategory groups raw hardware value by category across all
// equipment, and returns the overall total. Items without a value count as
// zero.
func EquipmentValueByCategory(items []models.Equipment) ([]CategoryAmount, decimal.Decimal) {
	byCategory := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, item := range items {
		value := decimal.Zero
		if item.Value != nil {
			value = *item.Value
		}
		label := categoryLabel(item.Category, DefaultEquipmentCategory)
		byCategory[label] = byCategory[label].Add(value)
		total = total.Add(value)
	}
	return sortedByAmount(byCategory), total
}

// UpcomingRenewals returns active subscriptions whose renewal date falls
// within [today, today+30d], both ends inclusive, ascending by renewal date.
func UpcomingRenewals(subs []models.Subscription, today dbtypes.Date) []models.Subscription {
	end := today.AddDays(renewalWindowDays)

	out := make([]models.Subscription, 0)
	for _, sub := range subs {
		if sub.Status != enums.SubscriptionStatusActive {
			continue
		}
		if sub.RenewalDate.Before(today) || sub.RenewalDate.After(end) {
			continue
		}
		out = append(out, sub)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RenewalDate.Before(out[j].RenewalDate)
	})
	return out
}

// RecentAdditions counts subscriptions and equipment created within the last
// seven days.
func RecentAdditions(subs []models.Subscription, items []models.Equipment, now time.Time) int {
	cutoff := now.AddDate(0, 0, -recentWindowInDays)
	count := 0
	for _, sub := range subs {
		if !sub.CreatedAt.Before(cutoff) {
			count++
		}
	}
	for _, item := range items {
		if !item.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

func categoryLabel(category *string, fallback string) string {
	if category == nil || *category == "" {
		return fallback
	}
	return *category
}

func sortedByAmount(byCategory map[string]decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}
