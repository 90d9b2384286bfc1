package ports

import (
	"context"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// SiteInput carries the data for registering a new job-site boundary.
type SiteInput struct {
	Name   string
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// SiteService manages geofence reference data.
type SiteService interface {
	List(ctx context.Context) ([]domain.Site, error)
	Create(ctx context.Context, in SiteInput) (*domain.Site, error)
}
