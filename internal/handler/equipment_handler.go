package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/service"
)

// EquipmentHandler handles equipment-type and terrain endpoints.
type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

// NewEquipmentHandler creates a new equipment handler.
func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

// CreateTypeRequest represents an equipment-type creation request.
type CreateTypeRequest struct {
	Name      string `json:"name" validate:"required"`
	ValueKind string `json:"equipement_val"`
	Symbol    string `json:"symbol" validate:"required"`
	Comment   string `json:"comment"`
}

// CreateTerrainRequest represents a terrain placement request.
type CreateTerrainRequest struct {
	Name    string `json:"name" validate:"required"`
	PlanID  uint   `json:"plans_id" validate:"required"`
	TypeID  uint   `json:"type_equipements_id" validate:"required"`
	Zone    string `json:"zone"`
	Comment string `json:"comment"`
}

// MoveTerrainRequest represents a drag-and-drop position update.
type MoveTerrainRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ListTypes godoc
// @Summary List equipment types
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.EquipmentType
// @Failure 500 {object} errors.ErrorResponse
// @Router /equipements [get]
func (h *EquipmentHandler) ListTypes(c echo.Context) error {
	types, err := h.equipmentService.ListTypes(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, types)
}

// CreateType godoc
// @Summary Create an equipment type
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTypeRequest true "Equipment type"
// @Success 201 {object} model.EquipmentType
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /equipements [post]
func (h *EquipmentHandler) CreateType(c echo.Context) error {
	var req CreateTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	equipmentType, err := h.equipmentService.CreateType(c.Request().Context(), req.Name, model.ValueKind(req.ValueKind), req.Symbol, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, equipmentType)
}

// DeleteType godoc
// @Summary Delete an equipment type
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment type ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /equipements/{id} [delete]
func (h *EquipmentHandler) DeleteType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.equipmentService.DeleteType(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "equipment type deleted"})
}

// ListByPlan godoc
// @Summary List terrain equipment placed on a plan
// @Tags terrain
// @Produce json
// @Security BearerAuth
// @Param planId path int true "Plan ID"
// @Success 200 {array} repository.TerrainDetail
// @Failure 400 {object} errors.ErrorResponse
// @Router /terrain/plan/{planId} [get]
func (h *EquipmentHandler) ListByPlan(c echo.Context) error {
	planID, err := parseIDParam(c, "planId")
	if err != nil {
		return err
	}

	items, err := h.equipmentService.ListTerrainByPlan(c.Request().Context(), planID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// ListAllDetails godoc
// @Summary List all terrain equipment with plan and type metadata
// @Tags terrain
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.TerrainDetail
// @Failure 500 {object} errors.ErrorResponse
// @Router /terrain/all-details [get]
func (h *EquipmentHandler) ListAllDetails(c echo.Context) error {
	items, err := h.equipmentService.ListAllTerrainDetails(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// CreateTerrain godoc
// @Summary Place equipment on a plan
// @Tags terrain
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTerrainRequest true "Terrain placement"
// @Success 201 {object} model.TerrainEquipment
// @Failure 400 {object} errors.ErrorResponse
// @Router /terrain [post]
func (h *EquipmentHandler) CreateTerrain(c echo.Context) error {
	var req CreateTerrainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.equipmentService.CreateTerrainItem(c.Request().Context(), req.Name, req.PlanID, req.TypeID, req.Zone, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, item)
}

// MoveTerrain godoc
// @Summary Persist a drag-and-drop position
// @Tags terrain
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Terrain equipment ID"
// @Param request body MoveTerrainRequest true "New coordinates"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /terrain/{id}/position [put]
func (h *EquipmentHandler) MoveTerrain(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req MoveTerrainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.equipmentService.MoveTerrainItem(c.Request().Context(), id, req.X, req.Y); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "position updated"})
}

// DeleteTerrain godoc
// @Summary Remove equipment from a plan
// @Tags terrain
// @Produce json
// @Security BearerAuth
// @Param id path int true "Terrain equipment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /terrain/{id} [delete]
func (h *EquipmentHandler) DeleteTerrain(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.equipmentService.DeleteTerrainItem(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "terrain item deleted"})
}

// ListActiveAlarms godoc
// @Summary List boolean equipment currently in defect
// @Tags alarms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.AlarmRow
// @Failure 500 {object} errors.ErrorResponse
// @Router /alarms/active [get]
func (h *EquipmentHandler) ListActiveAlarms(c echo.Context) error {
	alarms, err := h.equipmentService.ListActiveAlarms(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, alarms)
}
