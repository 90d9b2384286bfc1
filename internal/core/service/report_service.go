package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	// maxPage keeps (page-1)*limit far from integer overflow on adversarial
	// query values; no real ledger comes close to this many pages.
	maxPage = 1_000_000

	exportSheet      = "Sessions"
	exportTimeLayout = "2006-01-02 15:04:05"
)

type reportService struct {
	sessions ports.SessionRepository
	log      zerolog.Logger
}

// NewReportService returns the ReportService implementation over the ledger.
func NewReportService(sessions ports.SessionRepository, log zerolog.Logger) ports.ReportService {
	return &reportService{sessions: sessions, log: log}
}

func (s *reportService) ListSessions(ctx context.Context, in ports.ListSessionsInput) (*ports.SessionPage, error) {
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}

	items, total, err := s.sessions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.SessionPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// ExportSessions renders the filtered sessions as an XLSX workbook, one row
// per session, open sessions with an empty clock-out cell.
func (s *reportService) ExportSessions(ctx context.Context, in ports.ListSessionsInput) ([]byte, error) {
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}

	// Exports cover the whole filtered ledger, not one page: walk the pages
	// until the count is reached so a big ledger is never truncated.
	filter.Limit = maxPageLimit
	var items []*domain.Session
	for page := 1; ; page++ {
		filter.Page = page
		batch, total, err := s.sessions.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("export sessions: %w", err)
		}
		items = append(items, batch...)
		if len(batch) == 0 || int64(len(items)) >= total {
			break
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}

	header := []any{"SubContractor", "Employee", "Number", "ClockIn", "ClockOut", "Lat", "Lon"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}

	for i, session := range items {
		clockOut := ""
		if session.ClockOut != nil {
			clockOut = session.ClockOut.UTC().Format(exportTimeLayout)
		}
		row := []any{
			session.SubContractor,
			session.Name,
			session.Number,
			session.ClockIn.UTC().Format(exportTimeLayout),
			clockOut,
			session.Lat,
			session.Lon,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export sessions: %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export sessions: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}

	s.log.Info().Int("rows", len(items)).Msg("timesheet exported")
	return buf.Bytes(), nil
}

// toFilter normalises pagination and parses the date bounds.
func toFilter(in ports.ListSessionsInput) (ports.SessionFilter, error) {
	filter := ports.SessionFilter{
		Number:        in.Number,
		SubContractor: in.SubContractor,
		OpenOnly:      in.OpenOnly,
		Page:          in.Page,
		Limit:         in.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Page > maxPage {
		filter.Page = maxPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	var err error
	if filter.DateFrom, err = parseDateBound(in.DateFrom, false); err != nil {
		return filter, err
	}
	if filter.DateTo, err = parseDateBound(in.DateTo, true); err != nil {
		return filter, err
	}
	return filter, nil
}

// parseDateBound accepts RFC 3339 or a bare date; a bare date used as the
// upper bound covers the whole day.
func parseDateBound(v string, endOfDay bool) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", v, domain.ErrInvalidDateRange)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), nil
}
