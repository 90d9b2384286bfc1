package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

// SiteHandler handles admin management of geofence reference data.
type SiteHandler struct {
	service ports.SiteService
}

func NewSiteHandler(service ports.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

type createSiteRequest struct {
	Name   string  `json:"name"    validate:"required"`
	MinLat float64 `json:"min_lat" validate:"gte=-90,lte=90"`
	MaxLat float64 `json:"max_lat" validate:"gte=-90,lte=90"`
	MinLon float64 `json:"min_lon" validate:"gte=-180,lte=180"`
	MaxLon float64 `json:"max_lon" validate:"gte=-180,lte=180"`
}

type siteResponse struct {
	Name   string  `json:"name"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

type listSitesResponse struct {
	Data []siteResponse `json:"data"`
}

// List handles GET /v1/admin/sites.
//
// @Summary      List registered job sites
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listSitesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/sites [get]
func (h *SiteHandler) List(c echo.Context) error {
	sites, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := listSitesResponse{Data: make([]siteResponse, 0, len(sites))}
	for _, s := range sites {
		resp.Data = append(resp.Data, toSiteResponse(s))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/admin/sites.
//
// @Summary      Register a new job-site boundary
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSiteRequest  true  "Bounding box"
// @Success      201   {object}  siteResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/sites [post]
func (h *SiteHandler) Create(c echo.Context) error {
	var req createSiteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	site, err := h.service.Create(c.Request().Context(), ports.SiteInput{
		Name:   req.Name,
		MinLat: req.MinLat,
		MaxLat: req.MaxLat,
		MinLon: req.MinLon,
		MaxLon: req.MaxLon,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toSiteResponse(*site))
}

func toSiteResponse(s domain.Site) siteResponse {
	return siteResponse{
		Name:   s.Name,
		MinLat: s.MinLat,
		MaxLat: s.MaxLat,
		MinLon: s.MinLon,
		MaxLon: s.MaxLon,
	}
}
