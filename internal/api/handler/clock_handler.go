package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Arjunreddypulugu/timeclock-web/internal/api/metrics"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

// deviceCookieName holds the client-persisted device identifier that lets a
// returning worker skip re-entering a phone number.
const deviceCookieName = "tc_device_id"

const deviceCookieMaxAge = 365 * 24 * 60 * 60

// ClockHandler handles the worker-facing clock workflow.
type ClockHandler struct {
	service ports.ClockService
}

func NewClockHandler(service ports.ClockService) *ClockHandler {
	return &ClockHandler{service: service}
}

// deviceID returns the device identifier from the request cookie, issuing a
// fresh one on the response when the client has none.
func deviceID(c echo.Context) string {
	if ck, err := c.Cookie(deviceCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     deviceCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   deviceCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Status handles POST /v1/clock/status.
//
// @Summary      Evaluate the clock workflow for this device
// @Tags         clock
// @Accept       json
// @Produce      json
// @Param        body  body      clockStatusRequest  true  "Subcontractor name and optional location reading"
// @Success      200   {object}  clockContextResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/clock/status [post]
func (h *ClockHandler) Status(c echo.Context) error {
	var req clockStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cc, err := h.service.Status(c.Request().Context(), ports.StatusInput{
		SubContractor: req.SubContractor,
		DeviceID:      deviceID(c),
		Location:      toLocationInput(req.Location),
	})
	if err != nil {
		return err
	}
	if cc.State == domain.StateLocationInvalid {
		metrics.GeofenceMissesTotal.Inc()
	}

	return c.JSON(http.StatusOK, toClockContextResponse(cc))
}

// Register handles POST /v1/clock/register — the inline registration sub-flow.
//
// @Summary      Register this device's worker by phone number
// @Tags         clock
// @Accept       json
// @Produce      json
// @Param        body  body      clockRegisterRequest  true  "Registration details"
// @Success      200   {object}  clockContextResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clock/register [post]
func (h *ClockHandler) Register(c echo.Context) error {
	var req clockRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cc, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		SubContractor: req.SubContractor,
		Number:        req.Number,
		Name:          req.Name,
		DeviceID:      deviceID(c),
		Location:      toLocationInput(req.Location),
	})
	if err != nil {
		if errors.Is(err, domain.ErrOutsideGeofence) {
			metrics.GeofenceMissesTotal.Inc()
		}
		return err
	}

	// A clock action timestamp means a brand-new worker was created and
	// clocked in; otherwise a known number was rebound to this device.
	if cc.ActionAt != nil {
		metrics.RegistrationsTotal.WithLabelValues("new").Inc()
		metrics.ClockInsTotal.WithLabelValues(cc.Site).Inc()
	} else {
		metrics.RegistrationsTotal.WithLabelValues("rebind").Inc()
	}

	return c.JSON(http.StatusOK, toClockContextResponse(cc))
}

// ClockIn handles POST /v1/clock/in.
//
// @Summary      Clock in at the current location
// @Tags         clock
// @Accept       json
// @Produce      json
// @Param        body  body      clockActionRequest  true  "Subcontractor name and location reading"
// @Success      201   {object}  clockContextResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clock/in [post]
func (h *ClockHandler) ClockIn(c echo.Context) error {
	var req clockActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cc, err := h.service.ClockIn(c.Request().Context(), ports.ActionInput{
		SubContractor: req.SubContractor,
		DeviceID:      deviceID(c),
		Location:      toLocationInput(req.Location),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutsideGeofence):
			metrics.GeofenceMissesTotal.Inc()
		case errors.Is(err, domain.ErrSessionAlreadyOpen):
			metrics.ClockConflictsTotal.Inc()
		}
		return err
	}
	metrics.ClockInsTotal.WithLabelValues(cc.Site).Inc()

	return c.JSON(http.StatusCreated, toClockContextResponse(cc))
}

// ClockOut handles POST /v1/clock/out.
//
// @Summary      Clock out of the open session
// @Tags         clock
// @Accept       json
// @Produce      json
// @Param        body  body      clockActionRequest  true  "Subcontractor name and optional location"
// @Success      200   {object}  clockContextResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clock/out [post]
func (h *ClockHandler) ClockOut(c echo.Context) error {
	var req clockActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cc, err := h.service.ClockOut(c.Request().Context(), ports.ActionInput{
		SubContractor: req.SubContractor,
		DeviceID:      deviceID(c),
		Location:      toLocationInput(req.Location),
	})
	if err != nil {
		return err
	}
	metrics.ClockOutsTotal.Inc()

	return c.JSON(http.StatusOK, toClockContextResponse(cc))
}

// --- Mapping ---

func toLocationInput(l *locationRequest) *ports.LocationInput {
	if l == nil {
		return nil
	}
	return &ports.LocationInput{Lat: l.Lat, Lon: l.Lon}
}

func toClockContextResponse(cc *ports.ClockContext) clockContextResponse {
	resp := clockContextResponse{
		State:     string(cc.State),
		Site:      cc.Site,
		OpenSince: cc.OpenSince,
		ActionAt:  cc.ActionAt,
	}
	if cc.Worker != nil {
		resp.Worker = &workerResponse{
			SubContractor: cc.Worker.SubContractor,
			Name:          cc.Worker.Name,
			Number:        cc.Worker.Number,
		}
	}
	if cc.Location != nil {
		resp.Location = &locationRequest{Lat: cc.Location.Lat, Lon: cc.Location.Lon}
	}
	return resp
}
