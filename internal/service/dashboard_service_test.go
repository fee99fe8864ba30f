package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sitewatch/internal/repository"
)

// MockDashboardRepository is a mock implementation of DashboardRepository.
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) CountEquipment(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountActiveAlarms(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountPendingRounds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountRoundsScheduledOn(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountRounds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) CountRoundsWithCurrentReport(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) TopDefectZones(ctx context.Context, limit int) ([]repository.LabelCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockDashboardRepository) DefectsByType(ctx context.Context) ([]repository.LabelCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockDashboardRepository) TopOperatorsByReports(ctx context.Context, limit int) ([]repository.LabelCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LabelCount), args.Error(1)
}

func (m *MockDashboardRepository) AvgDelayByOperator(ctx context.Context) ([]repository.OperatorDelay, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.OperatorDelay), args.Error(1)
}

func TestAvailability(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		alarms   int64
		expected float64
	}{
		{name: "no equipment reads as fully available", total: 0, alarms: 0, expected: 100},
		{name: "quarter in alarm", total: 4, alarms: 1, expected: 75},
		{name: "all healthy", total: 10, alarms: 0, expected: 100},
		{name: "all in alarm", total: 3, alarms: 3, expected: 0},
		{name: "rounds to one decimal", total: 3, alarms: 1, expected: 66.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Availability(tt.total, tt.alarms))
		})
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		reported int64
		expected float64
	}{
		{name: "no rounds yet", total: 0, reported: 0, expected: 0},
		{name: "half reported", total: 8, reported: 4, expected: 50},
		{name: "rounds to one decimal", total: 3, reported: 2, expected: 66.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompletionRate(tt.total, tt.reported))
		})
	}
}

func TestDashboardService_Operational(t *testing.T) {
	mockRepo := new(MockDashboardRepository)
	mockRepo.On("CountEquipment", mock.Anything).Return(int64(8), nil)
	mockRepo.On("CountActiveAlarms", mock.Anything).Return(int64(2), nil)
	mockRepo.On("CountPendingRounds", mock.Anything).Return(int64(3), nil)
	mockRepo.On("CountRoundsScheduledOn", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(1), nil)

	service := NewDashboardService(mockRepo, nil)
	kpis, err := service.Operational(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(2), kpis.Alarms)
	assert.Equal(t, int64(3), kpis.PendingRounds)
	assert.Equal(t, int64(8), kpis.TotalEquipments)
	assert.Equal(t, float64(75), kpis.Availability)
	assert.Equal(t, int64(1), kpis.TodayRounds)

	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Performance(t *testing.T) {
	mockRepo := new(MockDashboardRepository)
	mockRepo.On("CountRounds", mock.Anything).Return(int64(10), nil)
	mockRepo.On("CountRoundsWithCurrentReport", mock.Anything).Return(int64(7), nil)
	mockRepo.On("TopOperatorsByReports", mock.Anything, 5).Return([]repository.LabelCount{
		{Label: "jdoe", Count: 4},
	}, nil)
	mockRepo.On("AvgDelayByOperator", mock.Anything).Return([]repository.OperatorDelay{
		{Label: "jdoe", AvgDays: 0.5},
	}, nil)

	service := NewDashboardService(mockRepo, nil)
	kpis, err := service.Performance(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, float64(70), kpis.CompletionRate)
	assert.Len(t, kpis.OperatorActivity, 1)
	assert.Len(t, kpis.AvgDelay, 1)

	mockRepo.AssertExpectations(t)
}

func TestDashboardService_Maintenance(t *testing.T) {
	mockRepo := new(MockDashboardRepository)
	mockRepo.On("TopDefectZones", mock.Anything, 5).Return([]repository.LabelCount{
		{Label: "Hall B - Z3", Count: 2},
	}, nil)
	mockRepo.On("DefectsByType", mock.Anything).Return([]repository.LabelCount{
		{Label: "Pump", Count: 2},
	}, nil)

	service := NewDashboardService(mockRepo, nil)
	kpis, err := service.Maintenance(context.Background())

	assert.NoError(t, err)
	assert.Len(t, kpis.TopZones, 1)
	assert.Len(t, kpis.DefectsByType, 1)

	mockRepo.AssertExpectations(t)
}
