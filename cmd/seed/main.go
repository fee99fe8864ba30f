package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sitewatch/internal/config"
	"sitewatch/internal/db"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// Bootstrap accounts for a fresh installation. The super admin is the
// only entry point into role administration, so one must always exist.
var seedUsers = []struct {
	identifier string
	email      string
	password   string
	roleID     uint
}{
	{"superadmin", "superadmin@sitewatch.local", "changeme123", model.SuperAdminRoleID},
	{"operator1", "operator1@sitewatch.local", "changeme123", model.OperatorRoleID},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Role{}, &model.Theme{}, &model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created := 0
	skipped := 0
	for _, seed := range seedUsers {
		existing, err := userRepo.FindByIdentifierOrEmail(ctx, seed.identifier, seed.email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Error checking user %s: %v", seed.identifier, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.identifier, err)
		}

		user := &model.User{
			Identifier:   seed.identifier,
			Email:        seed.email,
			PasswordHash: string(hash),
			RoleID:       seed.roleID,
			ThemeID:      model.DefaultThemeID,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.identifier, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", created)
	log.Printf("  - Users already present: %d", skipped)
}
