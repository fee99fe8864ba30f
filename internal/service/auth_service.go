package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sitewatch/internal/auth"
	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when login or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrUserAlreadyExists is returned when identifier or email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrWrongPassword is returned when the current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
)

// SessionUser is the authenticated user view returned at login, merged
// with role name, permission flags and resolved theme.
type SessionUser struct {
	ID          uint            `json:"id"`
	Identifier  string          `json:"identifier"`
	Email       string          `json:"email"`
	RoleID      uint            `json:"role_id"`
	RoleName    string          `json:"role_name"`
	ThemeID     uint            `json:"theme_id"`
	Theme       string          `json:"theme"`
	Permissions PermissionFlags `json:"permissions"`
}

// PermissionFlags mirrors the role capability columns.
type PermissionFlags struct {
	Write  bool `json:"write"`
	Read   bool `json:"read"`
	Export bool `json:"export"`
	Admin  bool `json:"admin"`
}

// AuthService handles registration, login and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, identifier, email, password string) (*model.User, error)
	Login(ctx context.Context, login, password string) (accessToken, refreshToken string, user *SessionUser, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with hashed password, default role and theme.
func (s *authService) Register(ctx context.Context, identifier, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByIdentifierOrEmail(ctx, identifier, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Identifier:   identifier,
		Email:        email,
		PasswordHash: string(hashedPassword),
		RoleID:       model.DefaultRoleID,
		ThemeID:      model.DefaultThemeID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by email or identifier and returns access and
// refresh tokens together with the resolved session user.
func (s *authService) Login(ctx context.Context, login, password string) (accessToken, refreshToken string, user *SessionUser, err error) {
	found, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(found.ID, found.Identifier, found.RoleID)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(found.ID, found.Identifier, found.RoleID)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, found.ID, found.Identifier, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	theme := found.Theme.CSSValue
	if theme == "" {
		theme = "light"
	}

	return accessToken, refreshToken, &SessionUser{
		ID:         found.ID,
		Identifier: found.Identifier,
		Email:      found.Email,
		RoleID:     found.RoleID,
		RoleName:   found.Role.Name,
		ThemeID:    found.ThemeID,
		Theme:      theme,
		Permissions: PermissionFlags{
			Write:  found.Role.Write,
			Read:   found.Role.Read,
			Export: found.Role.Export,
			Admin:  found.Role.AdminRights,
		},
	}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedIdentifier, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	if storedUserID != claims.UserID || storedIdentifier != claims.Identifier {
		return "", ErrInvalidRefreshToken
	}

	// Re-resolve the role so an admin reassignment takes effect on refresh.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Identifier, user.RoleID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// ChangePassword re-verifies the current hash before replacing it.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
