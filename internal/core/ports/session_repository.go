package ports

import (
	"context"
	"time"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// SessionFilter carries all query parameters for listing sessions.
type SessionFilter struct {
	Number        string    // optional: filter by phone number
	SubContractor string    // optional: filter by subcontractor
	OpenOnly      bool      // optional: only sessions with no clock-out
	DateFrom      time.Time // optional: clock_in >= DateFrom
	DateTo        time.Time // optional: clock_in <= DateTo
	Page          int       // 1-based
	Limit         int       // max rows per page (capped at 100 by service)
}

// SessionRepository defines persistence operations for the session ledger.
type SessionRepository interface {
	// OpenSessionFor returns the newest open session for the number, or
	// domain.ErrNoOpenSession when every row is closed.
	OpenSessionFor(ctx context.Context, number string) (*domain.Session, error)
	// ClockIn appends a new session row with no clock-out. It does not check
	// for an existing open session; that gate lives in the controller.
	ClockIn(ctx context.Context, s *domain.Session) error
	// ClockOut stamps all open rows for the number with the given time and
	// returns how many rows were closed.
	ClockOut(ctx context.Context, number string, at time.Time) (int64, error)
	// List returns a page of sessions matching filter plus the total count,
	// newest clock-in first.
	List(ctx context.Context, filter SessionFilter) ([]*domain.Session, int64, error)
}
