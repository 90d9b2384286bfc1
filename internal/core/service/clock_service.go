package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

// SiteLocator resolves a point to a job-site name (GeofenceDirectory).
type SiteLocator interface {
	Locate(ctx context.Context, lat, lon float64) (string, error)
}

// ClockGuard narrows the clock-in check-then-insert window across devices
// (Redis SETNX). Advisory: a guard failure must never block the workflow.
type ClockGuard interface {
	// Acquire takes the per-number lock. ok=false means another device is
	// mid-clock-in for the same number right now.
	Acquire(ctx context.Context, number string) (bool, error)
	Release(ctx context.Context, number string)
}

type clockService struct {
	workers  ports.WorkerRepository
	sessions ports.SessionRepository
	locator  SiteLocator
	guard    ClockGuard
	log      zerolog.Logger
	now      func() time.Time
}

// NewClockService returns the ClockService implementation orchestrating the
// registry, the ledger, and the geofence directory.
func NewClockService(
	workers ports.WorkerRepository,
	sessions ports.SessionRepository,
	locator SiteLocator,
	guard ClockGuard,
	log zerolog.Logger,
) ports.ClockService {
	return &clockService{
		workers:  workers,
		sessions: sessions,
		locator:  locator,
		guard:    guard,
		log:      log,
		now:      time.Now,
	}
}

// Status evaluates one request cycle: identify the device, probe the open
// session, gate on location. It never writes.
func (s *clockService) Status(ctx context.Context, in ports.StatusInput) (*ports.ClockContext, error) {
	if strings.TrimSpace(in.SubContractor) == "" {
		return nil, domain.ErrSubContractorRequired
	}

	cc := &ports.ClockContext{State: domain.StateUnidentified, Location: in.Location}

	// 1. Identify by device binding.
	worker, err := s.workers.FindByDevice(ctx, in.DeviceID)
	if err != nil {
		if errors.Is(err, domain.ErrWorkerNotFound) {
			// Unknown device: the UI runs the registration sub-flow next.
			cc.State = domain.StateIdentifying
			return cc, nil
		}
		return nil, fmt.Errorf("status: identify: %w", err)
	}
	cc.Worker = worker

	// 2. Load open-session status before the location gate so a returning
	// worker sees "clocked in since" even while the reading is pending.
	if err := s.loadOpenSession(ctx, cc); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	// 3. Location gate.
	s.applyLocation(ctx, cc)
	return cc, nil
}

// Register runs the inline registration sub-flow. A known number is rebound
// to this device and its identity and session state adopted; a brand-new
// number requires a name and an on-site reading, and registration is combined
// with an immediate clock-in.
func (s *clockService) Register(ctx context.Context, in ports.RegisterInput) (*ports.ClockContext, error) {
	if strings.TrimSpace(in.SubContractor) == "" {
		return nil, domain.ErrSubContractorRequired
	}
	if strings.TrimSpace(in.Number) == "" {
		return nil, domain.ErrNumberRequired
	}

	cc := &ports.ClockContext{State: domain.StateIdentifying, Location: in.Location}

	existing, err := s.workers.FindByNumber(ctx, in.Number)
	switch {
	case err == nil:
		// Returning worker on a new device: rebind and adopt.
		if err := s.workers.RebindDevice(ctx, in.Number, in.DeviceID); err != nil {
			return nil, fmt.Errorf("register: rebind device: %w", err)
		}
		existing.DeviceID = in.DeviceID
		cc.Worker = existing
		if err := s.loadOpenSession(ctx, cc); err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		s.applyLocation(ctx, cc)
		s.log.Info().Str("number", in.Number).Msg("device rebound to existing worker")
		return cc, nil

	case errors.Is(err, domain.ErrWorkerNotFound):
		// New worker: register and clock in as one step.
		if strings.TrimSpace(in.Name) == "" {
			return nil, domain.ErrNameRequired
		}
		if in.Location == nil {
			return nil, domain.ErrLocationRequired
		}
		site, err := s.locator.Locate(ctx, in.Location.Lat, in.Location.Lon)
		if err != nil {
			return nil, err
		}

		worker := &domain.Worker{
			SubContractor: in.SubContractor,
			Name:          in.Name,
			Number:        in.Number,
			DeviceID:      in.DeviceID,
		}
		if err := s.workers.Create(ctx, worker); err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		cc.Worker = worker
		cc.Site = site

		at, err := s.openSession(ctx, worker, in.SubContractor, in.Location, in.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("register: %w", err)
		}
		cc.State = domain.StateClockedIn
		cc.OpenSince = &at
		cc.ActionAt = &at
		s.log.Info().Str("number", in.Number).Str("site", site).Msg("worker registered and clocked in")
		return cc, nil

	default:
		return nil, fmt.Errorf("register: %w", err)
	}
}

// ClockIn opens a session for the identified worker at the resolved site.
func (s *clockService) ClockIn(ctx context.Context, in ports.ActionInput) (*ports.ClockContext, error) {
	if strings.TrimSpace(in.SubContractor) == "" {
		return nil, domain.ErrSubContractorRequired
	}

	worker, err := s.workers.FindByDevice(ctx, in.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("clock in: %w", err)
	}
	if in.Location == nil {
		return nil, domain.ErrLocationRequired
	}
	site, err := s.locator.Locate(ctx, in.Location.Lat, in.Location.Lon)
	if err != nil {
		return nil, err
	}

	// Narrow the check-then-insert race across devices. Guard errors are
	// logged and ignored; enforcement stays advisory.
	if ok, err := s.guard.Acquire(ctx, worker.Number); err != nil {
		s.log.Warn().Err(err).Str("number", worker.Number).Msg("clock guard unavailable, proceeding")
	} else if !ok {
		return nil, domain.ErrSessionAlreadyOpen
	} else {
		defer s.guard.Release(ctx, worker.Number)
	}

	cc := &ports.ClockContext{Worker: worker, Site: site, Location: in.Location}
	if err := s.loadOpenSession(ctx, cc); err != nil {
		return nil, fmt.Errorf("clock in: %w", err)
	}
	state := domain.StateIdle
	if cc.OpenSince != nil {
		state = domain.StateClockedIn
	}
	if !state.CanTransitionTo(domain.StateClockedIn) {
		return nil, domain.ErrSessionAlreadyOpen
	}

	at, err := s.openSession(ctx, worker, in.SubContractor, in.Location, in.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("clock in: %w", err)
	}
	cc.State = domain.StateClockedIn
	cc.OpenSince = &at
	cc.ActionAt = &at

	s.log.Info().
		Str("number", worker.Number).
		Str("site", site).
		Time("clock_in", at).
		Msg("clocked in")
	return cc, nil
}

// ClockOut closes every open session for the identified worker with one
// timestamp. No geofence gate on the way out: the gate guards the page, the
// write itself only needs identity.
func (s *clockService) ClockOut(ctx context.Context, in ports.ActionInput) (*ports.ClockContext, error) {
	if strings.TrimSpace(in.SubContractor) == "" {
		return nil, domain.ErrSubContractorRequired
	}

	worker, err := s.workers.FindByDevice(ctx, in.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("clock out: %w", err)
	}

	if _, err := s.sessions.OpenSessionFor(ctx, worker.Number); err != nil {
		return nil, fmt.Errorf("clock out: %w", err)
	}
	if !domain.StateClockedIn.CanTransitionTo(domain.StateIdle) {
		return nil, domain.ErrInvalidTransition
	}

	at := s.now().UTC()
	closed, err := s.sessions.ClockOut(ctx, worker.Number, at)
	if err != nil {
		return nil, fmt.Errorf("clock out: %w", err)
	}
	if closed > 1 {
		// Invariant violation from a past race; all rows get the same stamp.
		s.log.Warn().Str("number", worker.Number).Int64("closed", closed).Msg("closed multiple open sessions")
	}

	s.log.Info().Str("number", worker.Number).Time("clock_out", at).Msg("clocked out")
	return &ports.ClockContext{
		State:    domain.StateIdle,
		Worker:   worker,
		Location: in.Location,
		ActionAt: &at,
	}, nil
}

// loadOpenSession fills OpenSince from the ledger; absence is not an error.
func (s *clockService) loadOpenSession(ctx context.Context, cc *ports.ClockContext) error {
	open, err := s.sessions.OpenSessionFor(ctx, cc.Worker.Number)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return nil
		}
		return err
	}
	cc.OpenSince = &open.ClockIn
	return nil
}

// applyLocation settles the final state of a read-only cycle from the reading
// and the open-session status already loaded into cc.
func (s *clockService) applyLocation(ctx context.Context, cc *ports.ClockContext) {
	if cc.Location == nil {
		cc.State = domain.StateLocationPending
		return
	}
	site, err := s.locator.Locate(ctx, cc.Location.Lat, cc.Location.Lon)
	if err != nil {
		// Geofence miss or directory failure both halt clock actions.
		if !errors.Is(err, domain.ErrOutsideGeofence) {
			s.log.Error().Err(err).Msg("site lookup failed")
		}
		cc.State = domain.StateLocationInvalid
		return
	}
	cc.Site = site
	if cc.OpenSince != nil {
		cc.State = domain.StateClockedIn
		return
	}
	cc.State = domain.StateIdle
}

func (s *clockService) openSession(ctx context.Context, w *domain.Worker, subContractor string, loc *ports.LocationInput, deviceID string) (time.Time, error) {
	at := s.now().UTC()
	session := &domain.Session{
		SubContractor: subContractor,
		Name:          w.Name,
		Number:        w.Number,
		ClockIn:       at,
		Lat:           loc.Lat,
		Lon:           loc.Lon,
		DeviceID:      deviceID,
	}
	if err := s.sessions.ClockIn(ctx, session); err != nil {
		return time.Time{}, err
	}
	return at, nil
}
