package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// MockRoundRepository is a mock implementation of RoundRepository.
// WithTransaction runs the callback against the mock itself, so lock
// and write expectations can be asserted inline.
type MockRoundRepository struct {
	mock.Mock
}

func (m *MockRoundRepository) Create(ctx context.Context, round *model.Round) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockRoundRepository) FindByID(ctx context.Context, id uint) (*model.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Round), args.Error(1)
}

func (m *MockRoundRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Round), args.Error(1)
}

func (m *MockRoundRepository) ListAssigned(ctx context.Context, operatorID uint) ([]repository.AssignedRound, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AssignedRound), args.Error(1)
}

func (m *MockRoundRepository) UpdateStatus(ctx context.Context, id uint, status model.RoundStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRoundRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoundRepository) CreateReport(ctx context.Context, report *model.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockRoundRepository) FindReportByID(ctx context.Context, id uint) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockRoundRepository) FindReportByIDForUpdate(ctx context.Context, id uint) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockRoundRepository) UpdateReportState(ctx context.Context, id uint, state model.ReportState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

func (m *MockRoundRepository) ListReports(ctx context.Context) ([]repository.ReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ReportRow), args.Error(1)
}

func (m *MockRoundRepository) UpdateEquipmentLive(ctx context.Context, equipmentID uint, liveBool bool, liveValue *decimal.Decimal, comment string) error {
	args := m.Called(ctx, equipmentID, liveBool, liveValue, comment)
	return args.Error(0)
}

func (m *MockRoundRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RoundRepository) error) error {
	m.Called(ctx, fn)
	return fn(ctx, m)
}

// MockTerrainRepository is a mock implementation of TerrainRepository.
type MockTerrainRepository struct {
	mock.Mock
}

func (m *MockTerrainRepository) Create(ctx context.Context, item *model.TerrainEquipment) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTerrainRepository) FindByID(ctx context.Context, id uint) (*model.TerrainEquipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TerrainEquipment), args.Error(1)
}

func (m *MockTerrainRepository) ListByPlan(ctx context.Context, planID uint) ([]repository.TerrainDetail, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TerrainDetail), args.Error(1)
}

func (m *MockTerrainRepository) ListAllDetails(ctx context.Context) ([]repository.TerrainDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TerrainDetail), args.Error(1)
}

func (m *MockTerrainRepository) FindDetailsByIDs(ctx context.Context, ids []uint) ([]repository.TerrainDetail, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TerrainDetail), args.Error(1)
}

func (m *MockTerrainRepository) ListActiveAlarms(ctx context.Context) ([]repository.AlarmRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AlarmRow), args.Error(1)
}

func (m *MockTerrainRepository) UpdatePosition(ctx context.Context, id uint, x, y float64) error {
	args := m.Called(ctx, id, x, y)
	return args.Error(0)
}

func (m *MockTerrainRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRoundService_CreateRound(t *testing.T) {
	tests := []struct {
		name         string
		equipmentIDs []uint
		expectedJSON string
	}{
		{
			name:         "with target set",
			equipmentIDs: []uint{3, 7, 12},
			expectedJSON: "[3,7,12]",
		},
		{
			name:         "nil target set stored as empty array",
			equipmentIDs: nil,
			expectedJSON: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRoundRepository)
			mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Round")).Return(nil)

			service := NewRoundService(mockRepo, new(MockTerrainRepository))
			round, err := service.CreateRound(context.Background(), "Night round", 4, 1, time.Now(), tt.equipmentIDs)

			assert.NoError(t, err)
			assert.NotNil(t, round)
			assert.Equal(t, model.RoundStatusPending, round.Status)
			assert.Equal(t, tt.expectedJSON, string(round.EquipmentIDs))

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRoundService_GetRoundDetail(t *testing.T) {
	details := []repository.TerrainDetail{
		{ID: 3, Name: "Pump A", Zone: "A1"},
		{ID: 7, Name: "Sensor B", Zone: "B2"},
	}

	tests := []struct {
		name          string
		setupMock     func(*MockRoundRepository, *MockTerrainRepository)
		expectedLen   int
		expectedError error
	}{
		{
			name: "canonical array form",
			setupMock: func(mRound *MockRoundRepository, mTerrain *MockTerrainRepository) {
				mRound.On("FindByID", mock.Anything, uint(1)).Return(&model.Round{
					ID: 1, EquipmentIDs: datatypes.JSON(`[3,7]`),
				}, nil)
				mTerrain.On("FindDetailsByIDs", mock.Anything, []uint{3, 7}).Return(details, nil)
			},
			expectedLen: 2,
		},
		{
			name: "legacy doubly encoded form",
			setupMock: func(mRound *MockRoundRepository, mTerrain *MockTerrainRepository) {
				mRound.On("FindByID", mock.Anything, uint(1)).Return(&model.Round{
					ID: 1, EquipmentIDs: datatypes.JSON(`"[3,7]"`),
				}, nil)
				mTerrain.On("FindDetailsByIDs", mock.Anything, []uint{3, 7}).Return(details, nil)
			},
			expectedLen: 2,
		},
		{
			name: "empty target set yields empty list",
			setupMock: func(mRound *MockRoundRepository, mTerrain *MockTerrainRepository) {
				mRound.On("FindByID", mock.Anything, uint(1)).Return(&model.Round{
					ID: 1, EquipmentIDs: datatypes.JSON(`[]`),
				}, nil)
				mTerrain.On("FindDetailsByIDs", mock.Anything, []uint{}).Return([]repository.TerrainDetail{}, nil)
			},
			expectedLen: 0,
		},
		{
			name: "round not found",
			setupMock: func(mRound *MockRoundRepository, mTerrain *MockTerrainRepository) {
				mRound.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrRoundNotFound,
		},
		{
			name: "unparseable stored value",
			setupMock: func(mRound *MockRoundRepository, mTerrain *MockTerrainRepository) {
				mRound.On("FindByID", mock.Anything, uint(1)).Return(&model.Round{
					ID: 1, EquipmentIDs: datatypes.JSON(`{"oops"`),
				}, nil)
			},
			expectedError: apperrors.ErrCorruptedRoundData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRound := new(MockRoundRepository)
			mockTerrain := new(MockTerrainRepository)
			tt.setupMock(mockRound, mockTerrain)

			service := NewRoundService(mockRound, mockTerrain)
			result, err := service.GetRoundDetail(context.Background(), 1)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedLen)
			}

			mockRound.AssertExpectations(t)
			mockTerrain.AssertExpectations(t)
		})
	}
}

func TestRoundService_SubmitReport(t *testing.T) {
	entries := []model.ReportEntry{
		{EquipmentID: 3, Status: "1", Value: "22.5", Comment: "nominal"},
		{EquipmentID: 7, Status: "0", Comment: "leaking"},
	}

	t.Run("submit completes the round and applies entries", func(t *testing.T) {
		mockRepo := new(MockRoundRepository)
		mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindByIDForUpdate", mock.Anything, uint(9)).Return(&model.Round{
			ID: 9, Status: model.RoundStatusPending,
		}, nil)
		mockRepo.On("CreateReport", mock.Anything, mock.AnythingOfType("*model.Report")).Return(nil).Once()
		mockRepo.On("UpdateStatus", mock.Anything, uint(9), model.RoundStatusCompleted).Return(nil).Once()
		expected := decimal.RequireFromString("22.5")
		mockRepo.On("UpdateEquipmentLive", mock.Anything, uint(3), true, &expected, "nominal").Return(nil)
		mockRepo.On("UpdateEquipmentLive", mock.Anything, uint(7), false, (*decimal.Decimal)(nil), "leaking").Return(nil)

		service := NewRoundService(mockRepo, new(MockTerrainRepository))
		report, err := service.SubmitReport(context.Background(), 9, 4, entries, "")

		assert.NoError(t, err)
		assert.NotNil(t, report)
		assert.Equal(t, uint(9), report.RoundID)
		assert.Equal(t, model.ReportStateValid, report.State)

		mockRepo.AssertExpectations(t)
	})

	t.Run("submit on completed round is a conflict", func(t *testing.T) {
		mockRepo := new(MockRoundRepository)
		mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindByIDForUpdate", mock.Anything, uint(9)).Return(&model.Round{
			ID: 9, Status: model.RoundStatusCompleted,
		}, nil)

		service := NewRoundService(mockRepo, new(MockTerrainRepository))
		report, err := service.SubmitReport(context.Background(), 9, 4, entries, "")

		assert.Equal(t, apperrors.ErrRoundCompleted, err)
		assert.Nil(t, report)
		mockRepo.AssertNotCalled(t, "CreateReport", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown round", func(t *testing.T) {
		mockRepo := new(MockRoundRepository)
		mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindByIDForUpdate", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewRoundService(mockRepo, new(MockTerrainRepository))
		report, err := service.SubmitReport(context.Background(), 9, 4, entries, "")

		assert.Equal(t, apperrors.ErrRoundNotFound, err)
		assert.Nil(t, report)
		mockRepo.AssertExpectations(t)
	})
}

func TestRoundService_AmendReport(t *testing.T) {
	entries := []model.ReportEntry{
		{EquipmentID: 3, Status: "1", Comment: "fixed"},
	}

	t.Run("amendment supersedes the old report", func(t *testing.T) {
		mockRepo := new(MockRoundRepository)
		mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindReportByIDForUpdate", mock.Anything, uint(20)).Return(&model.Report{
			ID: 20, RoundID: 9, State: model.ReportStateValid,
		}, nil)
		mockRepo.On("UpdateReportState", mock.Anything, uint(20), model.ReportStateObsolete).Return(nil).Once()
		mockRepo.On("CreateReport", mock.Anything, mock.AnythingOfType("*model.Report")).Return(nil).Once()
		mockRepo.On("UpdateEquipmentLive", mock.Anything, uint(3), true, (*decimal.Decimal)(nil), "fixed").Return(nil)

		service := NewRoundService(mockRepo, new(MockTerrainRepository))
		report, err := service.AmendReport(context.Background(), 20, 9, 5, entries)

		assert.NoError(t, err)
		assert.NotNil(t, report)
		assert.Equal(t, model.ReportStateAmended, report.State)
		assert.Equal(t, uint(5), report.OperatorID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("already obsolete report is a conflict", func(t *testing.T) {
		mockRepo := new(MockRoundRepository)
		mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindReportByIDForUpdate", mock.Anything, uint(20)).Return(&model.Report{
			ID: 20, RoundID: 9, State: model.ReportStateObsolete,
		}, nil)

		service := NewRoundService(mockRepo, new(MockTerrainRepository))
		report, err := service.AmendReport(context.Background(), 20, 9, 5, entries)

		assert.Equal(t, apperrors.ErrReportObsolete, err)
		assert.Nil(t, report)
		mockRepo.AssertNotCalled(t, "UpdateReportState", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("round mismatch reads as not found", func(t *testing.T) {
		mockRepo := new(MockRoundRepository)
		mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindReportByIDForUpdate", mock.Anything, uint(20)).Return(&model.Report{
			ID: 20, RoundID: 13, State: model.ReportStateValid,
		}, nil)

		service := NewRoundService(mockRepo, new(MockTerrainRepository))
		report, err := service.AmendReport(context.Background(), 20, 9, 5, entries)

		assert.Equal(t, apperrors.ErrReportNotFound, err)
		assert.Nil(t, report)
		mockRepo.AssertExpectations(t)
	})
}
