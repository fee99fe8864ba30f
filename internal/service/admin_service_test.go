package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
)

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) List(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func TestAdminService_UpdateRole(t *testing.T) {
	superAdmin := &model.User{ID: 1, Identifier: "root", RoleID: model.SuperAdminRoleID}
	regular := &model.User{ID: 8, Identifier: "jdoe", RoleID: model.DefaultRoleID}
	otherSuperAdmin := &model.User{ID: 2, Identifier: "root2", RoleID: model.SuperAdminRoleID}

	tests := []struct {
		name          string
		requesterID   uint
		targetID      uint
		newRoleID     uint
		setupMock     func(*MockUserRepository, *MockRoleRepository)
		expectedError error
	}{
		{
			name:        "super admin reassigns a regular user",
			requesterID: 1,
			targetID:    8,
			newRoleID:   model.OperatorRoleID,
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(superAdmin, nil)
				mUser.On("FindByID", mock.Anything, uint(8)).Return(regular, nil)
				mRole.On("FindByID", mock.Anything, uint(model.OperatorRoleID)).Return(&model.Role{ID: model.OperatorRoleID, Name: "Operator"}, nil)
				mUser.On("UpdateRole", mock.Anything, uint(8), uint(model.OperatorRoleID)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "non super admin requester is refused",
			requesterID: 8,
			targetID:    1,
			newRoleID:   model.DefaultRoleID,
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByID", mock.Anything, uint(8)).Return(regular, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:        "super admin target is protected",
			requesterID: 1,
			targetID:    2,
			newRoleID:   model.DefaultRoleID,
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(superAdmin, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(otherSuperAdmin, nil)
			},
			expectedError: apperrors.ErrSuperAdminProtected,
		},
		{
			name:        "target does not exist",
			requesterID: 1,
			targetID:    99,
			newRoleID:   model.DefaultRoleID,
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(superAdmin, nil)
				mUser.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:        "unknown role is refused",
			requesterID: 1,
			targetID:    8,
			newRoleID:   42,
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(superAdmin, nil)
				mUser.On("FindByID", mock.Anything, uint(8)).Return(regular, nil)
				mRole.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockRoleRepo := new(MockRoleRepository)
			tt.setupMock(mockUserRepo, mockRoleRepo)

			service := NewAdminService(mockUserRepo, mockRoleRepo)
			err := service.UpdateRole(context.Background(), tt.requesterID, tt.targetID, tt.newRoleID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockRoleRepo.AssertExpectations(t)
		})
	}
}
