package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/service"
)

// RoundHandler handles round and report endpoints.
type RoundHandler struct {
	roundService service.RoundService
}

// NewRoundHandler creates a new round handler.
func NewRoundHandler(roundService service.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

// CreateRoundRequest represents a round creation request. The creator
// is taken from the authenticated token.
type CreateRoundRequest struct {
	Name          string `json:"name" validate:"required"`
	OperatorID    uint   `json:"operator_id" validate:"required"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
	EquipmentIDs  []uint `json:"equipments_ids" validate:"required,min=1"`
}

// ReportEntryRequest is one per-equipment answer in a report payload.
type ReportEntryRequest struct {
	EquipmentID uint   `json:"id" validate:"required"`
	Status      string `json:"status" validate:"required"`
	Value       string `json:"value"`
	Comment     string `json:"comment"`
}

// SubmitReportRequest represents a report submission. Submission can
// only produce a valid report; amended and obsolete states exist solely
// through the correction flow.
type SubmitReportRequest struct {
	Entries []ReportEntryRequest `json:"report_data" validate:"required,dive"`
	State   string               `json:"etat" validate:"omitempty,oneof=valide"`
}

// AmendReportRequest represents a report correction. The modifier is
// taken from the authenticated token.
type AmendReportRequest struct {
	OldReportID uint                 `json:"old_report_id" validate:"required"`
	RoundID     uint                 `json:"demande_id" validate:"required"`
	Entries     []ReportEntryRequest `json:"new_report_data" validate:"required,dive"`
}

// CreateRound godoc
// @Summary Create a scheduled inspection round
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRoundRequest true "Round definition"
// @Success 201 {object} model.Round
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rondes [post]
func (h *RoundHandler) CreateRound(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateRoundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid scheduled_date",
			Code:  "INVALID_DATE",
		})
	}

	round, err := h.roundService.CreateRound(c.Request().Context(), req.Name, req.OperatorID, claims.UserID, scheduledDate, req.EquipmentIDs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, round)
}

// ListAssigned godoc
// @Summary List pending rounds assigned to an operator
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Operator ID"
// @Success 200 {array} repository.AssignedRound
// @Failure 400 {object} errors.ErrorResponse
// @Router /rondes/assigned/{userId} [get]
func (h *RoundHandler) ListAssigned(c echo.Context) error {
	operatorID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	rounds, err := h.roundService.ListAssigned(c.Request().Context(), operatorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rounds)
}

// RoundDetail godoc
// @Summary Resolve a round's target equipment to full rows
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Round ID"
// @Success 200 {array} repository.TerrainDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rondes/{id}/details [get]
func (h *RoundHandler) RoundDetail(c echo.Context) error {
	roundID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	details, err := h.roundService.GetRoundDetail(c.Request().Context(), roundID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, details)
}

// SubmitReport godoc
// @Summary Submit the findings for a round
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Round ID"
// @Param request body SubmitReportRequest true "Report data"
// @Success 201 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rondes/{id}/submit [post]
func (h *RoundHandler) SubmitReport(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	roundID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req SubmitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.roundService.SubmitReport(c.Request().Context(), roundID, claims.UserID, toEntries(req.Entries), model.ReportState(req.State))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, report)
}

// ListReports godoc
// @Summary List all reports with round and operator names
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.ReportRow
// @Failure 500 {object} errors.ErrorResponse
// @Router /reports [get]
func (h *RoundHandler) ListReports(c echo.Context) error {
	reports, err := h.roundService.ListReports(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reports)
}

// AmendReport godoc
// @Summary Supersede a report with a corrected one
// @Tags rounds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmendReportRequest true "Correction data"
// @Success 201 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reports/modify [post]
func (h *RoundHandler) AmendReport(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req AmendReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.roundService.AmendReport(c.Request().Context(), req.OldReportID, req.RoundID, claims.UserID, toEntries(req.Entries))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, report)
}

func toEntries(reqs []ReportEntryRequest) []model.ReportEntry {
	entries := make([]model.ReportEntry, 0, len(reqs))
	for _, r := range reqs {
		entries = append(entries, model.ReportEntry{
			EquipmentID: r.EquipmentID,
			Status:      r.Status,
			Value:       r.Value,
			Comment:     r.Comment,
		})
	}
	return entries
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
