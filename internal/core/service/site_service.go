package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

type siteService struct {
	repo ports.SiteRepository
	log  zerolog.Logger
}

// NewSiteService returns the SiteService implementation over the geofence
// reference data.
func NewSiteService(repo ports.SiteRepository, log zerolog.Logger) ports.SiteService {
	return &siteService{repo: repo, log: log}
}

func (s *siteService) List(ctx context.Context) ([]domain.Site, error) {
	sites, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// Create validates and stores a new bounding box. Latitude bounds must be
// ordered; longitude bounds are accepted in either order, matching how the
// lookup compares them.
func (s *siteService) Create(ctx context.Context, in ports.SiteInput) (*domain.Site, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidSiteBounds
	}
	if in.MinLat > in.MaxLat {
		return nil, domain.ErrInvalidSiteBounds
	}
	if in.MinLat < -90 || in.MaxLat > 90 ||
		in.MinLon < -180 || in.MinLon > 180 || in.MaxLon < -180 || in.MaxLon > 180 {
		return nil, domain.ErrInvalidSiteBounds
	}

	site := &domain.Site{
		Name:   strings.TrimSpace(in.Name),
		MinLat: in.MinLat,
		MaxLat: in.MaxLat,
		MinLon: in.MinLon,
		MaxLon: in.MaxLon,
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}

	s.log.Info().Str("site", site.Name).Msg("job site registered")
	return site, nil
}
