package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles the admin views over the session ledger.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type sessionResponse struct {
	SubContractor string     `json:"sub_contractor"`
	Name          string     `json:"name"`
	Number        string     `json:"number"`
	ClockIn       time.Time  `json:"clock_in"`
	ClockOut      *time.Time `json:"clock_out,omitempty"`
	Lat           float64    `json:"lat"`
	Lon           float64    `json:"lon"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listSessionsResponse struct {
	Data       []sessionResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/admin/sessions.
//
// @Summary      List clock sessions
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        number          query  string  false  "Filter by phone number"
// @Param        sub_contractor  query  string  false  "Filter by subcontractor"
// @Param        open            query  bool    false  "Only open sessions"
// @Param        from            query  string  false  "Clock-in lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param        to              query  string  false  "Clock-in upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param        page            query  int     false  "Page (1-based)"
// @Param        limit           query  int     false  "Rows per page (max 100)"
// @Success      200  {object}  listSessionsResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/sessions [get]
func (h *ReportHandler) List(c echo.Context) error {
	page, err := h.service.ListSessions(c.Request().Context(), queryToListInput(c))
	if err != nil {
		return err
	}

	resp := listSessionsResponse{
		Data: make([]sessionResponse, 0, len(page.Items)),
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
	for _, s := range page.Items {
		resp.Data = append(resp.Data, toSessionResponse(s))
	}
	return c.JSON(http.StatusOK, resp)
}

// Export handles GET /v1/admin/sessions/export — same filters, XLSX body.
//
// @Summary      Export clock sessions as a spreadsheet
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        number          query  string  false  "Filter by phone number"
// @Param        sub_contractor  query  string  false  "Filter by subcontractor"
// @Param        open            query  bool    false  "Only open sessions"
// @Param        from            query  string  false  "Clock-in lower bound"
// @Param        to              query  string  false  "Clock-in upper bound"
// @Success      200  {file}    binary
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/sessions/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	data, err := h.service.ExportSessions(c.Request().Context(), queryToListInput(c))
	if err != nil {
		return err
	}

	filename := "timeclock-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

func queryToListInput(c echo.Context) ports.ListSessionsInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	open, _ := strconv.ParseBool(c.QueryParam("open"))

	return ports.ListSessionsInput{
		Number:        c.QueryParam("number"),
		SubContractor: c.QueryParam("sub_contractor"),
		OpenOnly:      open,
		DateFrom:      c.QueryParam("from"),
		DateTo:        c.QueryParam("to"),
		Page:          page,
		Limit:         limit,
	}
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		SubContractor: s.SubContractor,
		Name:          s.Name,
		Number:        s.Number,
		ClockIn:       s.ClockIn,
		ClockOut:      s.ClockOut,
		Lat:           s.Lat,
		Lon:           s.Lon,
	}
}
