package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sitewatch/internal/auth"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifierOrEmail(ctx context.Context, identifier, email string) (*model.User, error) {
	args := m.Called(ctx, identifier, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]repository.UserWithRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserWithRole), args.Error(1)
}

func (m *MockUserRepository) ListOperators(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, roleID uint) error {
	args := m.Called(ctx, id, roleID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTheme(ctx context.Context, id uint, themeID uint) error {
	args := m.Called(ctx, id, themeID)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, identifier string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, identifier, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		identifier    string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:       "successful registration",
			identifier: "jdoe",
			email:      "jdoe@example.com",
			password:   "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifierOrEmail", mock.Anything, "jdoe", "jdoe@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:       "identifier already taken",
			identifier: "jdoe",
			email:      "other@example.com",
			password:   "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByIdentifierOrEmail", mock.Anything, "jdoe", "other@example.com").Return(&model.User{Identifier: "jdoe"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			service := NewAuthService(mockRepo, jwtService, mockTokenStore)
			user, err := service.Register(context.Background(), tt.identifier, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.identifier, user.Identifier)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, uint(model.DefaultRoleID), user.RoleID)
				assert.Equal(t, uint(model.DefaultThemeID), user.ThemeID)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	storedUser := &model.User{
		ID:           7,
		Identifier:   "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: string(hashedPassword),
		RoleID:       model.OperatorRoleID,
		ThemeID:      2,
		Role:         model.Role{ID: model.OperatorRoleID, Name: "Operator", Write: true, Read: true},
		Theme:        model.Theme{ID: 2, Name: "dark", CSSValue: "dark"},
	}

	tests := []struct {
		name          string
		login         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "login by email",
			login:    "jdoe@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByLogin", mock.Anything, "jdoe@example.com").Return(storedUser, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "jdoe", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "login by identifier",
			login:    "jdoe",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByLogin", mock.Anything, "jdoe").Return(storedUser, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "jdoe", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown login",
			login:    "nobody",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByLogin", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			login:    "jdoe",
			password: "not-the-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByLogin", mock.Anything, "jdoe").Return(storedUser, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.login, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, "jdoe", user.Identifier)
				assert.Equal(t, "Operator", user.RoleName)
				assert.Equal(t, "dark", user.Theme)
				assert.True(t, user.Permissions.Write)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByLogin", mock.Anything, "jdoe").Return(nil, gorm.ErrInvalidDB)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	accessToken, refreshToken, user, err := service.Login(context.Background(), "jdoe", "password123")

	// An infrastructure failure must not read as bad credentials.
	assert.Error(t, err)
	assert.NotEqual(t, ErrInvalidCredentials, err)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, user)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	currentHash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)

	tests := []struct {
		name          string
		current       string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:    "successful change",
			current: "old-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, PasswordHash: string(currentHash)}, nil)
				m.On("UpdatePassword", mock.Anything, uint(3), mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:    "wrong current password",
			current: "guess",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, PasswordHash: string(currentHash)}, nil)
			},
			expectedError: ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
			err := service.ChangePassword(context.Background(), 3, tt.current, "new-password")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
