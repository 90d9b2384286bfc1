package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/clock/in", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing subcontractor", domain.ErrSubContractorRequired, http.StatusUnprocessableEntity},
		{"missing location", domain.ErrLocationRequired, http.StatusUnprocessableEntity},
		{"outside geofence", domain.ErrOutsideGeofence, http.StatusUnprocessableEntity},
		{"bad site bounds", domain.ErrInvalidSiteBounds, http.StatusUnprocessableEntity},
		{"bad date range", domain.ErrInvalidDateRange, http.StatusUnprocessableEntity},
		{"worker not found", domain.ErrWorkerNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"no open session", domain.ErrNoOpenSession, http.StatusConflict},
		{"session already open", domain.ErrSessionAlreadyOpen, http.StatusConflict},
		{"worker exists", domain.ErrWorkerExists, http.StatusConflict},
		{"site exists", domain.ErrSiteExists, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := invokeErrorHandler(t, tc.err)
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding envelope: %v", err)
			}
			if resp.Error == "" {
				t.Error("expected an error message in the envelope")
			}
		})
	}
}

// Wrapped domain errors still map to their status.
func TestHTTPErrorHandler_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("clock in"), domain.ErrSessionAlreadyOpen)

	rec := invokeErrorHandler(t, wrapped)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusUnprocessableEntity, "lat must be at most 90"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "lat must be at most 90") {
		t.Errorf("message lost: %s", rec.Body.String())
	}
}

// Unknown errors become a generic 500 with no internal detail leaked.
func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec := invokeErrorHandler(t, errors.New("dial tcp 10.0.0.5:27017: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "27017") {
		t.Error("internal detail leaked to the client")
	}
}
