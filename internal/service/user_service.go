package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// UserService handles per-user profile operations.
type UserService interface {
	ListThemes(ctx context.Context) ([]model.Theme, error)
	SetTheme(ctx context.Context, userID, themeID uint) (cssValue string, err error)
	Profile(ctx context.Context, userID uint) (*SessionUser, error)
}

type userService struct {
	userRepo  repository.UserRepository
	themeRepo repository.ThemeRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, themeRepo repository.ThemeRepository) UserService {
	return &userService{userRepo: userRepo, themeRepo: themeRepo}
}

func (s *userService) ListThemes(ctx context.Context) ([]model.Theme, error) {
	return s.themeRepo.List(ctx)
}

// SetTheme switches the user's theme and returns the resolved CSS value.
func (s *userService) SetTheme(ctx context.Context, userID, themeID uint) (string, error) {
	theme, err := s.themeRepo.FindByID(ctx, themeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrThemeNotFound
		}
		return "", fmt.Errorf("find theme: %w", err)
	}

	if err := s.userRepo.UpdateTheme(ctx, userID, themeID); err != nil {
		return "", fmt.Errorf("update theme: %w", err)
	}
	return theme.CSSValue, nil
}

// Profile resolves the current session view of a user.
func (s *userService) Profile(ctx context.Context, userID uint) (*SessionUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	theme := user.Theme.CSSValue
	if theme == "" {
		theme = "light"
	}

	return &SessionUser{
		ID:         user.ID,
		Identifier: user.Identifier,
		Email:      user.Email,
		RoleID:     user.RoleID,
		RoleName:   user.Role.Name,
		ThemeID:    user.ThemeID,
		Theme:      theme,
		Permissions: PermissionFlags{
			Write:  user.Role.Write,
			Read:   user.Role.Read,
			Export: user.Role.Export,
			Admin:  user.Role.AdminRights,
		},
	}, nil
}
