package models

import "fmt"

// StoreStatus is the lifecycle state of a store. Values are stable and
// persisted; the display names are derived.
type StoreStatus int

const (
	StoreStatusOpen StoreStatus = iota
	StoreStatusPermanentlyClosed
	StoreStatusOnboarding
	StoreStatusRequiresAdminIntervention
)

var storeStatusNames = map[StoreStatus]string{
	StoreStatusOpen:                      "Open",
	StoreStatusPermanentlyClosed:         "Permanently Closed",
	StoreStatusOnboarding:                "Onboarding",
	StoreStatusRequiresAdminIntervention: "Requires Admin Intervention",
}

// StoreStatuses returns all statuses in value order.
func StoreStatuses() []StoreStatus {
	return []StoreStatus{
		StoreStatusOpen,
		StoreStatusPermanentlyClosed,
		StoreStatusOnboarding,
		StoreStatusRequiresAdminIntervention,
	}
}

// Name returns the human-readable form used in exports and selects.
func (s StoreStatus) Name() string {
	if name, ok := storeStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseStoreStatusName maps a display name back to its status.
func ParseStoreStatusName(name string) (StoreStatus, error) {
	for status, statusName := range storeStatusNames {
		if statusName == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("invalid store status: %s", name)
}
