package enums

import "fmt"

// Availability captures an equipment item's current disposition. Distinct
// from subscription status.
type Availability string

const (
	AvailabilityAssigned Availability = "assigned"
	AvailabilityStorage  Availability = "storage"
	AvailabilityRepair   Availability = "repair"
)

var validAvailabilities = []Availability{
	AvailabilityAssigned,
	AvailabilityStorage,
	AvailabilityRepair,
}

// String implements fmt.Stringer.
func (a Availability) String() string {
	return string(a)
}

// IsValid reports whether the value is a known Availability.
func (a Availability) IsValid() bool {
	for _, candidate := range validAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAvailability converts raw input into an Availability.
func ParseAvailability(value string) (Availability, error) {
	for _, candidate := range validAvailabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability %q", value)
}
