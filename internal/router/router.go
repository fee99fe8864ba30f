package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"sitewatch/internal/auth"
	"sitewatch/internal/config"
	"sitewatch/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	adminHandler *handler.AdminHandler,
	planHandler *handler.PlanHandler,
	equipmentHandler *handler.EquipmentHandler,
	roundHandler *handler.RoundHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded plan images are served statically.
	e.Static("/uploads", cfg.UploadDir)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/themes", userHandler.ListThemes)

	// Secured routes: every privileged call carries a signed token and
	// the actor is read from validated claims, never the request body.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.Profile)
	secured.PUT("/user/theme", userHandler.SetTheme)
	secured.PUT("/user/password", authHandler.ChangePassword)

	// Admin
	secured.GET("/admin/users", adminHandler.ListUsers)
	secured.GET("/roles", adminHandler.ListRoles)
	secured.PUT("/admin/update-role", adminHandler.UpdateRole)
	secured.GET("/users/operators", adminHandler.ListOperators)

	// Plans
	secured.POST("/zooning/upload", planHandler.Upload)
	secured.GET("/zooning/plans", planHandler.List)
	secured.DELETE("/zooning/plan/:id", planHandler.Delete)

	// Equipment types
	secured.GET("/equipements", equipmentHandler.ListTypes)
	secured.POST("/equipements", equipmentHandler.CreateType)
	secured.DELETE("/equipements/:id", equipmentHandler.DeleteType)

	// Terrain
	secured.GET("/terrain/plan/:planId", equipmentHandler.ListByPlan)
	secured.GET("/terrain/all-details", equipmentHandler.ListAllDetails)
	secured.POST("/terrain", equipmentHandler.CreateTerrain)
	secured.PUT("/terrain/:id/position", equipmentHandler.MoveTerrain)
	secured.DELETE("/terrain/:id", equipmentHandler.DeleteTerrain)

	// Rounds and reports
	secured.POST("/rondes", roundHandler.CreateRound)
	secured.GET("/rondes/assigned/:userId", roundHandler.ListAssigned)
	secured.GET("/rondes/:id/details", roundHandler.RoundDetail)
	secured.POST("/rondes/:id/submit", roundHandler.SubmitReport)
	secured.GET("/reports", roundHandler.ListReports)
	secured.POST("/reports/modify", roundHandler.AmendReport)

	// Dashboard and alarms
	secured.GET("/dashboard/operational", dashboardHandler.Operational)
	secured.GET("/dashboard/maintenance", dashboardHandler.Maintenance)
	secured.GET("/dashboard/performance", dashboardHandler.Performance)
	secured.GET("/alarms/active", equipmentHandler.ListActiveAlarms)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
