package ports

import "github.com/adsignage/billboard-server/internal/core/domain"

// Stores is the explicit collection registry built once at startup and passed
// by reference to every component that needs persistence. Each field is the
// single shared store for its entity type; stores are never cloned.
type Stores struct {
	Billboards  EntityStore[domain.Billboard]
	Users       EntityStore[domain.User]
	Permissions EntityStore[domain.PermissionSet]
	Schedules   EntityStore[domain.Schedule]
}
