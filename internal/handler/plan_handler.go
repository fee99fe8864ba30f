package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sitewatch/internal/errors"
	"sitewatch/internal/service"
)

// PlanHandler handles floor-plan endpoints.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Upload godoc
// @Summary Upload a floor-plan image
// @Tags plans
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Plan name"
// @Param planImage formData file true "Plan image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /zooning/upload [post]
func (h *PlanHandler) Upload(c echo.Context) error {
	name := c.FormValue("name")
	fileHeader, err := c.FormFile("planImage")
	if name == "" || err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "name and image are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "cannot read uploaded file",
			Code:  "INVALID_UPLOAD",
		})
	}
	defer src.Close()

	plan, err := h.planService.Upload(c.Request().Context(), name, fileHeader.Filename, src)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "plan uploaded",
		"link":    plan.ImgLink,
		"plan":    plan,
	})
}

// List godoc
// @Summary List plans, newest first
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Plan
// @Failure 500 {object} errors.ErrorResponse
// @Router /zooning/plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	plans, err := h.planService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, plans)
}

// Delete godoc
// @Summary Delete a plan and its backing image
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /zooning/plan/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.planService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "plan deleted",
	})
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
