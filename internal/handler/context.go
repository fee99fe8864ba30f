package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"sitewatch/internal/auth"
)

// currentClaims extracts the validated JWT claims set by the echo-jwt
// middleware. Identity is never read from request bodies.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}
