package main

import (
	"log"
	"net/http"
	"os"

	_ "sitewatch/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sitewatch/internal/auth"
	"sitewatch/internal/cache"
	"sitewatch/internal/config"
	"sitewatch/internal/db"
	"sitewatch/internal/handler"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
	"sitewatch/internal/router"
	"sitewatch/internal/service"
	"sitewatch/internal/storage"
)

// @title Facility Monitor API
// @version 1.0
// @description Facility monitoring backend: plans, equipment, inspection rounds and KPI dashboards.
// @host localhost:5000
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Report{},
			&model.Round{},
			&model.TerrainEquipment{},
			&model.EquipmentType{},
			&model.Plan{},
			&model.User{},
			&model.Role{},
			&model.Theme{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Role{},
		&model.Theme{},
		&model.User{},
		&model.Plan{},
		&model.EquipmentType{},
		&model.TerrainEquipment{},
		&model.Round{},
		&model.Report{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Roles and themes are fixed reference data; registration depends on them.
	if err := seedReferenceData(gormDB); err != nil {
		log.Fatalf("seed reference data: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	planStore, err := storage.NewPlanStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("plan store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	themeRepo := repository.NewThemeRepository(gormDB)
	planRepo := repository.NewPlanRepository(gormDB)
	typeRepo := repository.NewEquipmentTypeRepository(gormDB)
	terrainRepo := repository.NewTerrainRepository(gormDB)
	roundRepo := repository.NewRoundRepository(gormDB)
	dashboardRepo := repository.NewDashboardRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, themeRepo)
	adminService := service.NewAdminService(userRepo, roleRepo)
	planService := service.NewPlanService(planRepo, planStore)
	equipmentService := service.NewEquipmentService(typeRepo, terrainRepo)
	roundService := service.NewRoundService(roundRepo, terrainRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)
	planHandler := handler.NewPlanHandler(planService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	roundHandler := handler.NewRoundHandler(roundService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		adminHandler,
		planHandler,
		equipmentHandler,
		roundHandler,
		dashboardHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
