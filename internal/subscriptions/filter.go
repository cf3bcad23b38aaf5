package subscriptions

import (
	"strings"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

const filterAll = "all"

// ApplyFilter narrows the full per-user set in memory. The text query is a
// case-insensitive substring match over name, owner, and team; the
// categorical filters AND together, with "all" (or empty) as identity.
func ApplyFilter(subs []models.Subscription, filter ListFilter) []models.Subscription {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	status := normalizeChoice(filter.Status)
	cycle := normalizeChoice(filter.BillingCycle)
	category := normalizeChoice(filter.Category)

	out := make([]models.Subscription, 0, len(subs))
	for _, sub := range subs {
		if query != "" && !matchesQuery(sub, query) {
			continue
		}
		if status != "" && !strings.EqualFold(string(sub.Status), status) {
			continue
		}
		if cycle != "" && !strings.EqualFold(string(sub.BillingCycle), cycle) {
			continue
		}
		if category != "" && !matchesCategory(sub.Category, category) {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func matchesQuery(sub models.Subscription, query string) bool {
	if strings.Contains(strings.ToLower(sub.Name), query) {
		return true
	}
	if sub.Owner != nil && strings.Contains(strings.ToLower(*sub.Owner), query) {
		return true
	}
	if sub.Team != nil && strings.Contains(strings.ToLower(*sub.Team), query) {
		return true
	}
	return false
}

func matchesCategory(category *string, want string) bool {
	if category == nil {
		return false
	}
	return strings.EqualFold(*category, want)
}

func normalizeChoice(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, filterAll) {
		return ""
	}
	return value
}
