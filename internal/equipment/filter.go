package equipment

import (
	"strings"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

const filterAll = "all"

// ApplyFilter narrows the full per-user set in memory. The text query is a
// case-insensitive substring match over item_name, serial_number, and
// assigned_to; the categorical filters AND together, with "all" (or empty)
// as identity.
func ApplyFilter(items []models.Equipment, filter ListFilter) []models.Equipment {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	availability := normalizeChoice(filter.Availability)
	category := normalizeChoice(filter.Category)

	out := make([]models.Equipment, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if availability != "" && !strings.EqualFold(string(item.Availability), availability) {
			continue
		}
		if category != "" && !matchesCategory(item.Category, category) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item models.Equipment, query string) bool {
	if strings.Contains(strings.ToLower(item.ItemName), query) {
		return true
	}
	if item.SerialNumber != nil && strings.Contains(strings.ToLower(*item.SerialNumber), query) {
		return true
	}
	if item.AssignedTo != nil && strings.Contains(strings.ToLower(*item.AssignedTo), query) {
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
