package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

// GeofenceDirectory answers "which job site contains this point". Every call
// re-reads the full site set; at tens of sites a linear scan beats carrying a
// spatial index or a cache that can serve stale boundaries.
type GeofenceDirectory struct {
	sites ports.SiteRepository
	log   zerolog.Logger
}

func NewGeofenceDirectory(sites ports.SiteRepository, log zerolog.Logger) *GeofenceDirectory {
	return &GeofenceDirectory{sites: sites, log: log}
}

// Locate returns the name of the first site whose bounding box contains the
// point, in repository order (sorted by name). Overlapping boxes resolve to
// the first match. Returns domain.ErrOutsideGeofence when no box matches.
func (g *GeofenceDirectory) Locate(ctx context.Context, lat, lon float64) (string, error) {
	sites, err := g.sites.List(ctx)
	if err != nil {
		return "", fmt.Errorf("locate: %w", err)
	}

	for _, s := range sites {
		if s.Contains(lat, lon) {
			return s.Name, nil
		}
	}

	g.log.Debug().Float64("lat", lat).Float64("lon", lon).Msg("point outside all job sites")
	return "", domain.ErrOutsideGeofence
}
