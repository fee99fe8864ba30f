package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/storage"
)

// MockPlanRepository is a mock implementation of PlanRepository.
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context) ([]model.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Plan), args.Error(1)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestPlanStore(t *testing.T) *storage.PlanStore {
	t.Helper()
	store, err := storage.NewPlanStore(t.TempDir())
	assert.NoError(t, err)
	return store
}

func TestPlanService_Upload(t *testing.T) {
	t.Run("stores file and inserts row", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Plan")).Return(nil)

		service := NewPlanService(mockRepo, newTestPlanStore(t))
		plan, err := service.Upload(context.Background(), "Hall B", "hall-b.png", strings.NewReader("png-bytes"))

		assert.NoError(t, err)
		assert.NotNil(t, plan)
		assert.Equal(t, "Hall B", plan.Name)
		assert.Contains(t, plan.ImgLink, "/uploads/plans/")
		assert.True(t, strings.HasSuffix(plan.ImgLink, ".png"))

		mockRepo.AssertExpectations(t)
	})

	t.Run("failed insert removes the stored file", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Plan")).Return(gorm.ErrInvalidDB)

		service := NewPlanService(mockRepo, newTestPlanStore(t))
		plan, err := service.Upload(context.Background(), "Hall B", "hall-b.png", strings.NewReader("png-bytes"))

		assert.Error(t, err)
		assert.Nil(t, plan)
		mockRepo.AssertExpectations(t)
	})
}

func TestPlanService_Delete(t *testing.T) {
	t.Run("deletes the row even when the file is already gone", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Plan{
			ID: 3, Name: "Hall B", ImgLink: "/uploads/plans/missing.png",
		}, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		service := NewPlanService(mockRepo, newTestPlanStore(t))
		err := service.Delete(context.Background(), 3)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown plan", func(t *testing.T) {
		mockRepo := new(MockPlanRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

		service := NewPlanService(mockRepo, newTestPlanStore(t))
		err := service.Delete(context.Background(), 3)

		assert.Equal(t, apperrors.ErrPlanNotFound, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
