package repository

import (
	"context"

	"gorm.io/gorm"

	"sitewatch/internal/model"
)

// RoleRepository defines role reference-data operations.
type RoleRepository interface {
	List(ctx context.Context) ([]model.Role, error)
	FindByID(ctx context.Context, id uint) (*model.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ThemeRepository defines theme reference-data operations.
type ThemeRepository interface {
	List(ctx context.Context) ([]model.Theme, error)
	FindByID(ctx context.Context, id uint) (*model.Theme, error)
}

type themeRepository struct {
	db *gorm.DB
}

// NewThemeRepository creates a new theme repository.
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) List(ctx context.Context) ([]model.Theme, error) {
	var themes []model.Theme
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&themes).Error; err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *themeRepository) FindByID(ctx context.Context, id uint) (*model.Theme, error) {
	var theme model.Theme
	if err := r.db.WithContext(ctx).First(&theme, id).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}
