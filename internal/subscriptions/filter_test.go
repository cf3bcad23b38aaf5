package subscriptions

import (
	"testing"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

func strPtr(s string) *string { return &s }

func sampleSubscriptions() []models.Subscription {
	return []models.Subscription{
		{
			Name:         "Figma",
			Owner:        strPtr("Dana"),
			Team:         strPtr("Design"),
			Category:     strPtr("Design"),
			Status:       enums.SubscriptionStatusActive,
			BillingCycle: enums.BillingCycleMonthly,
		},
		{
			Name:         "GitHub",
			Owner:        strPtr("Sam"),
			Team:         strPtr("Engineering"),
			Category:     strPtr("DevTools"),
			Status:       enums.SubscriptionStatusActive,
			BillingCycle: enums.BillingCycleAnnual,
		},
		{
			Name:         "Notion",
			Status:       enums.SubscriptionStatusCancelled,
			BillingCycle: enums.BillingCycleMonthly,
		},
	}
}

func TestApplyFilterIdentityWhenEmpty(t *testing.T) {
	subs := sampleSubscriptions()
	got := ApplyFilter(subs, ListFilter{})
	if len(got) != len(subs) {
		t.Fatalf("expected %d results, got %d", len(subs), len(got))
	}
}

func TestApplyFilterAllIsIdentity(t *testing.T) {
	subs := sampleSubscriptions()
	got := ApplyFilter(subs, ListFilter{Status: "all", BillingCycle: "ALL", Category: "all"})
	if len(got) != len(subs) {
		t.Fatalf("expected %d results, got %d", len(subs), len(got))
	}
}

func TestApplyFilterQueryMatchesNameOwnerTeam(t *testing.T) {
	subs := sampleSubscriptions()

	cases := []struct {
		query string
		want  string
	}{
		{"figma", "Figma"},   // name
		{"SAM", "GitHub"},    // owner, case-insensitive
		{"gineer", "GitHub"}, // team substring
	}
	for _, tc := range cases {
		got := ApplyFilter(subs, ListFilter{Query: tc.query})
		if len(got) != 1 || got[0].Name != tc.want {
			t.Fatalf("query %q: expected only %s, got %v", tc.query, tc.want, got)
		}
	}
}

func TestApplyFilterQueryMisses(t *testing.T) {
	got := ApplyFilter(sampleSubscriptions(), ListFilter{Query: "does-not-exist"})
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestApplyFilterCategoricalsAndTogether(t *testing.T) {
	subs := sampleSubscriptions()

	got := ApplyFilter(subs, ListFilter{Status: "active", BillingCycle: "monthly"})
	if len(got) != 1 || got[0].Name != "Figma" {
		t.Fatalf("expected only Figma, got %v", got)
	}

	got = ApplyFilter(subs, ListFilter{Status: "active", Category: "DevTools"})
	if len(got) != 1 || got[0].Name != "GitHub" {
		t.Fatalf("expected only GitHub, got %v", got)
	}
}

func TestApplyFilterNilCategoryNeverMatchesConcreteChoice(t *testing.T) {
	got := ApplyFilter(sampleSubscriptions(), ListFilter{Category: "Design"})
	for _, sub := range got {
		if sub.Category == nil {
			t.Fatal("nil category must not match a concrete category filter")
		}
	}
	if len(got) != 1 || got[0].Name != "Figma" {
		t.Fatalf("expected only Figma, got %v", got)
	}
}

func TestApplyFilterQueryAndCategoricalCombined(t *testing.T) {
	got := ApplyFilter(sampleSubscriptions(), ListFilter{Query: "git", Status: "cancelled"})
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}
