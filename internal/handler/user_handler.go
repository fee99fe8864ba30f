package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sitewatch/internal/errors"
	"sitewatch/internal/service"
)

// UserHandler handles theme and profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SetThemeRequest represents a theme selection request.
type SetThemeRequest struct {
	ThemeID uint `json:"themeId" validate:"required"`
}

// ListThemes godoc
// @Summary List selectable themes
// @Tags users
// @Produce json
// @Success 200 {array} model.Theme
// @Failure 500 {object} errors.ErrorResponse
// @Router /themes [get]
func (h *UserHandler) ListThemes(c echo.Context) error {
	themes, err := h.userService.ListThemes(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, themes)
}

// SetTheme godoc
// @Summary Switch the caller's theme
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetThemeRequest true "Theme selection"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/theme [put]
func (h *UserHandler) SetTheme(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SetThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cssValue, err := h.userService.SetTheme(c.Request().Context(), claims.UserID, req.ThemeID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":  "theme updated",
		"cssValue": cssValue,
	})
}

// Profile godoc
// @Summary Current session user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SessionUser
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}
