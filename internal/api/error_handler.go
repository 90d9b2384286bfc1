package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrSubContractorRequired),
		errors.Is(err, domain.ErrNumberRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrLocationRequired),
		errors.Is(err, domain.ErrInvalidSiteBounds),
		errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrOutsideGeofence):
		return http.StatusUnprocessableEntity, "not a valid job site"
	case errors.Is(err, domain.ErrWorkerNotFound):
		return http.StatusNotFound, "worker not recognised"
	case errors.Is(err, domain.ErrSiteNotFound):
		return http.StatusNotFound, "site not found"
	case errors.Is(err, domain.ErrNoOpenSession):
		return http.StatusConflict, "no open session to close"
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		return http.StatusConflict, "session already open"
	case errors.Is(err, domain.ErrWorkerExists):
		return http.StatusConflict, "number already registered"
	case errors.Is(err, domain.ErrSiteExists):
		return http.StatusConflict, "site already exists"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error (datastore failures included): log the real cause,
	// return a generic message. Clock actions fail closed.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
