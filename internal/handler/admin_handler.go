package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitewatch/internal/errors"
	"sitewatch/internal/service"
)

// AdminHandler handles user administration endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// UpdateRoleRequest represents a role reassignment request. The
// requester is taken from the authenticated token, never the body.
type UpdateRoleRequest struct {
	TargetUserID uint `json:"targetUserId" validate:"required"`
	NewRoleID    uint `json:"newRoleId" validate:"required"`
}

// ListUsers godoc
// @Summary List users with their role names
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.UserWithRole
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// ListRoles godoc
// @Summary List role definitions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Role
// @Failure 500 {object} errors.ErrorResponse
// @Router /roles [get]
func (h *AdminHandler) ListRoles(c echo.Context) error {
	roles, err := h.adminService.ListRoles(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, roles)
}

// ListOperators godoc
// @Summary List users eligible for round assignment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/operators [get]
func (h *AdminHandler) ListOperators(c echo.Context) error {
	operators, err := h.adminService.ListOperators(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, operators)
}

// UpdateRole godoc
// @Summary Reassign a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRoleRequest true "Role reassignment"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/update-role [put]
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.adminService.UpdateRole(c.Request().Context(), claims.UserID, req.TargetUserID, req.NewRoleID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "role updated",
	})
}
