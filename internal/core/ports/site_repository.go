package ports

import (
	"context"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// SiteRepository defines persistence operations for geofence reference data.
type SiteRepository interface {
	// List returns every registered site sorted by name, so that geofence
	// lookups scan in a deterministic order.
	List(ctx context.Context) ([]domain.Site, error)
	// Create inserts a new site. Returns domain.ErrSiteExists when the name
	// is already taken.
	Create(ctx context.Context, s *domain.Site) error
}
