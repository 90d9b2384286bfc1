package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

type stubReportService struct {
	page *ports.SessionPage
	data []byte
	err  error

	lastIn ports.ListSessionsInput
}

func (s *stubReportService) ListSessions(_ context.Context, in ports.ListSessionsInput) (*ports.SessionPage, error) {
	s.lastIn = in
	return s.page, s.err
}

func (s *stubReportService) ExportSessions(_ context.Context, in ports.ListSessionsInput) ([]byte, error) {
	s.lastIn = in
	return s.data, s.err
}

func newReportRequest(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReportHandler_List(t *testing.T) {
	out := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)
	svc := &stubReportService{page: &ports.SessionPage{
		Items: []*domain.Session{{
			SubContractor: "Acme Crew",
			Name:          "Jane Doe",
			Number:        "555-1234",
			ClockIn:       time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			ClockOut:      &out,
			Lat:           15, Lon: -95,
		}},
		Total: 1, Page: 1, Limit: 20, TotalPages: 1,
	}}
	h := NewReportHandler(svc)

	c, rec := newReportRequest(t, "/v1/admin/sessions?number=555-1234&open=true&page=2&limit=5")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	in := svc.lastIn
	if in.Number != "555-1234" || !in.OpenOnly || in.Page != 2 || in.Limit != 5 {
		t.Errorf("query not forwarded: %+v", in)
	}

	var resp listSessionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Number != "555-1234" {
		t.Errorf("unexpected data: %+v", resp.Data)
	}
	if resp.Pagination.Total != 1 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestReportHandler_List_BadDatePassesThrough(t *testing.T) {
	svc := &stubReportService{err: domain.ErrInvalidDateRange}
	h := NewReportHandler(svc)

	c, _ := newReportRequest(t, "/v1/admin/sessions?from=not-a-date")
	if err := h.List(c); err != domain.ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestReportHandler_Export(t *testing.T) {
	svc := &stubReportService{data: []byte("PK\x03\x04workbook")}
	h := NewReportHandler(svc)

	c, rec := newReportRequest(t, "/v1/admin/sessions/export?sub_contractor=Acme+Crew")
	if err := h.Export(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != xlsxContentType {
		t.Errorf("unexpected content type %q", got)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.HasPrefix(cd, `attachment; filename="timeclock-`) || !strings.HasSuffix(cd, `.xlsx"`) {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if svc.lastIn.SubContractor != "Acme Crew" {
		t.Errorf("filter not forwarded: %+v", svc.lastIn)
	}
	if rec.Body.String() != "PK\x03\x04workbook" {
		t.Error("workbook bytes not written verbatim")
	}
}
