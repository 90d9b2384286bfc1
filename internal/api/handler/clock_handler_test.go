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

// stubClockService returns canned contexts and records the inputs it saw.
type stubClockService struct {
	ctx *ports.ClockContext
	err error

	statusIn   *ports.StatusInput
	registerIn *ports.RegisterInput
	actionIn   *ports.ActionInput
}

func (s *stubClockService) Status(_ context.Context, in ports.StatusInput) (*ports.ClockContext, error) {
	s.statusIn = &in
	return s.ctx, s.err
}

func (s *stubClockService) Register(_ context.Context, in ports.RegisterInput) (*ports.ClockContext, error) {
	s.registerIn = &in
	return s.ctx, s.err
}

func (s *stubClockService) ClockIn(_ context.Context, in ports.ActionInput) (*ports.ClockContext, error) {
	s.actionIn = &in
	return s.ctx, s.err
}

func (s *stubClockService) ClockOut(_ context.Context, in ports.ActionInput) (*ports.ClockContext, error) {
	s.actionIn = &in
	return s.ctx, s.err
}

func newClockRequest(t *testing.T, body string, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/clock/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: deviceCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestClockHandler_Status_KnownDevice(t *testing.T) {
	since := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc := &stubClockService{ctx: &ports.ClockContext{
		State:     domain.StateClockedIn,
		Worker:    &domain.Worker{SubContractor: "Acme Crew", Name: "Jane Doe", Number: "555-1234"},
		Site:      "Yard A",
		Location:  &ports.LocationInput{Lat: 15, Lon: -95},
		OpenSince: &since,
	}}
	h := NewClockHandler(svc)

	c, rec := newClockRequest(t,
		`{"sub_contractor":"Acme Crew","location":{"lat":15,"lon":-95}}`,
		"dev-1")
	if err := h.Status(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.statusIn.DeviceID != "dev-1" {
		t.Errorf("expected device id from cookie, got %q", svc.statusIn.DeviceID)
	}
	if svc.statusIn.Location == nil || svc.statusIn.Location.Lat != 15 {
		t.Errorf("location not forwarded: %+v", svc.statusIn.Location)
	}

	var resp clockContextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.State != string(domain.StateClockedIn) || resp.Site != "Yard A" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Worker == nil || resp.Worker.Number != "555-1234" {
		t.Errorf("worker missing from response: %+v", resp.Worker)
	}
	// The device id never leaves the server in the body.
	if strings.Contains(rec.Body.String(), "dev-1") {
		t.Error("device id leaked into response body")
	}
}

// A client without a device cookie gets one issued on the response.
func TestClockHandler_Status_IssuesDeviceCookie(t *testing.T) {
	svc := &stubClockService{ctx: &ports.ClockContext{State: domain.StateIdentifying}}
	h := NewClockHandler(svc)

	c, rec := newClockRequest(t, `{"sub_contractor":"Acme Crew"}`, "")
	if err := h.Status(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var issued *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == deviceCookieName {
			issued = ck
		}
	}
	if issued == nil {
		t.Fatal("expected device cookie on response")
	}
	if issued.Value == "" || !issued.HttpOnly {
		t.Errorf("unexpected cookie: %+v", issued)
	}
	if svc.statusIn.DeviceID != issued.Value {
		t.Errorf("service saw %q but cookie holds %q", svc.statusIn.DeviceID, issued.Value)
	}
}

func TestClockHandler_Status_MissingSubContractor(t *testing.T) {
	h := NewClockHandler(&stubClockService{})

	c, _ := newClockRequest(t, `{}`, "dev-1")
	err := h.Status(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestClockHandler_Status_LatitudeOutOfRange(t *testing.T) {
	h := NewClockHandler(&stubClockService{})

	c, _ := newClockRequest(t,
		`{"sub_contractor":"Acme Crew","location":{"lat":91,"lon":0}}`,
		"dev-1")
	err := h.Status(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestClockHandler_Register_ForwardsInput(t *testing.T) {
	at := time.Date(2026, 8, 28, 8, 30, 0, 0, time.UTC)
	svc := &stubClockService{ctx: &ports.ClockContext{
		State:    domain.StateClockedIn,
		Worker:   &domain.Worker{Name: "Jane Doe", Number: "555-1234"},
		Site:     "Yard A",
		ActionAt: &at,
	}}
	h := NewClockHandler(svc)

	c, rec := newClockRequest(t,
		`{"sub_contractor":"Acme Crew","number":"555-1234","name":"Jane Doe","location":{"lat":15,"lon":-95}}`,
		"dev-1")
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	in := svc.registerIn
	if in.Number != "555-1234" || in.Name != "Jane Doe" || in.DeviceID != "dev-1" {
		t.Errorf("input not forwarded: %+v", in)
	}
}

func TestClockHandler_Register_MissingNumber(t *testing.T) {
	h := NewClockHandler(&stubClockService{})

	c, _ := newClockRequest(t, `{"sub_contractor":"Acme Crew"}`, "dev-1")
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestClockHandler_ClockIn_Created(t *testing.T) {
	at := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc := &stubClockService{ctx: &ports.ClockContext{
		State:     domain.StateClockedIn,
		Worker:    &domain.Worker{Name: "Jane Doe", Number: "555-1234"},
		Site:      "Yard A",
		OpenSince: &at,
		ActionAt:  &at,
	}}
	h := NewClockHandler(svc)

	c, rec := newClockRequest(t,
		`{"sub_contractor":"Acme Crew","location":{"lat":15,"lon":-95}}`,
		"dev-1")
	if err := h.ClockIn(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp clockContextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ActionAt == nil || !resp.ActionAt.Equal(at) {
		t.Errorf("expected action_at %v, got %v", at, resp.ActionAt)
	}
}

// Domain errors pass through untouched; the central error handler maps them.
func TestClockHandler_ClockIn_AlreadyOpenPassesThrough(t *testing.T) {
	svc := &stubClockService{err: domain.ErrSessionAlreadyOpen}
	h := NewClockHandler(svc)

	c, _ := newClockRequest(t,
		`{"sub_contractor":"Acme Crew","location":{"lat":15,"lon":-95}}`,
		"dev-1")
	if err := h.ClockIn(c); err != domain.ErrSessionAlreadyOpen {
		t.Fatalf("expected ErrSessionAlreadyOpen, got %v", err)
	}
}

func TestClockHandler_ClockOut_OK(t *testing.T) {
	at := time.Date(2026, 8, 28, 17, 0, 0, 0, time.UTC)
	svc := &stubClockService{ctx: &ports.ClockContext{
		State:    domain.StateIdle,
		Worker:   &domain.Worker{Name: "Jane Doe", Number: "555-1234"},
		ActionAt: &at,
	}}
	h := NewClockHandler(svc)

	c, rec := newClockRequest(t, `{"sub_contractor":"Acme Crew"}`, "dev-1")
	if err := h.ClockOut(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp clockContextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.State != string(domain.StateIdle) {
		t.Errorf("expected state %q, got %q", domain.StateIdle, resp.State)
	}
}

func TestClockHandler_InvalidJSON(t *testing.T) {
	h := NewClockHandler(&stubClockService{})

	c, _ := newClockRequest(t, `{not json`, "dev-1")
	err := h.Status(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
