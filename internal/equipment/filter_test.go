package equipment

import (
	"testing"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	"github.com/opsdeskhq/opsdesk-backend/pkg/enums"
)

func sampleEquipment() []models.Equipment {
	return []models.Equipment{
		{
			ItemName:     "Dell Latitude",
			SerialNumber: auditStrPtr("SN-1001"),
			AssignedTo:   auditStrPtr("Dana"),
			Category:     auditStrPtr("Laptops"),
			Availability: enums.AvailabilityAssigned,
		},
		{
			ItemName:     "Cisco Switch",
			SerialNumber: auditStrPtr("SW-2002"),
			Category:     auditStrPtr("Networking"),
			Availability: enums.AvailabilityStorage,
		},
		{
			ItemName:     "Projector",
			Availability: enums.AvailabilityRepair,
		},
	}
}

func TestEquipmentFilterIdentityWhenEmpty(t *testing.T) {
	items := sampleEquipment()
	got := ApplyFilter(items, ListFilter{})
	if len(got) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(got))
	}
}

func TestEquipmentFilterAllIsIdentity(t *testing.T) {
	items := sampleEquipment()
	got := ApplyFilter(items, ListFilter{Availability: "ALL", Category: "all"})
	if len(got) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(got))
	}
}

func TestEquipmentFilterQueryMatchesNameSerialAssignee(t *testing.T) {
	items := sampleEquipment()

	cases := []struct {
		query string
		want  string
	}{
		{"latitude", "Dell Latitude"}, // name
		{"sw-2002", "Cisco Switch"},   // serial, case-insensitive
		{"dana", "Dell Latitude"},     // assignee
	}
	for _, tc := range cases {
		got := ApplyFilter(items, ListFilter{Query: tc.query})
		if len(got) != 1 || got[0].ItemName != tc.want {
			t.Fatalf("query %q: expected only %s, got %v", tc.query, tc.want, got)
		}
	}
}

func TestEquipmentFilterAvailability(t *testing.T) {
	got := ApplyFilter(sampleEquipment(), ListFilter{Availability: "storage"})
	if len(got) != 1 || got[0].ItemName != "Cisco Switch" {
		t.Fatalf("expected only Cisco Switch, got %v", got)
	}
}

func TestEquipmentFilterNilCategoryNeverMatchesConcreteChoice(t *testing.T) {
	got := ApplyFilter(sampleEquipment(), ListFilter{Category: "Laptops"})
	if len(got) != 1 || got[0].ItemName != "Dell Latitude" {
		t.Fatalf("expected only Dell Latitude, got %v", got)
	}
	for _, item := range got {
		if item.Category == nil {
			t.Fatal("nil category must not match a concrete category filter")
		}
	}
}

func TestEquipmentFilterCombined(t *testing.T) {
	got := ApplyFilter(sampleEquipment(), ListFilter{Query: "cisco", Availability: "assigned"})
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}
