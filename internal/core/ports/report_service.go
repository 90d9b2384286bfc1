package ports

import (
	"context"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// ListSessionsInput carries all parameters for the admin session listing.
type ListSessionsInput struct {
	Number        string
	SubContractor string
	OpenOnly      bool
	DateFrom      string // RFC 3339 or YYYY-MM-DD, empty = unbounded
	DateTo        string
	Page          int
	Limit         int
}

// SessionPage is one page of the session listing.
type SessionPage struct {
	Items      []*domain.Session
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReportService exposes the back-office views over the session ledger.
type ReportService interface {
	ListSessions(ctx context.Context, in ListSessionsInput) (*SessionPage, error)
	// ExportSessions renders the filtered sessions as an XLSX workbook.
	ExportSessions(ctx context.Context, in ListSessionsInput) ([]byte, error)
}
