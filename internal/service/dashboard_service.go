package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"sitewatch/internal/cache"
	"sitewatch/internal/repository"
)

const (
	dashboardCacheTTL = 30 * time.Second
	topListLimit      = 5
)

// OperationalKPIs is the operational dashboard view.
type OperationalKPIs struct {
	Alarms          int64   `json:"alarms"`
	PendingRounds   int64   `json:"pending_rounds"`
	TotalEquipments int64   `json:"total_equipments"`
	Availability    float64 `json:"availability"`
	TodayRounds     int64   `json:"today_rounds"`
}

// MaintenanceKPIs is the maintenance dashboard view.
type MaintenanceKPIs struct {
	TopZones      []repository.LabelCount `json:"topZones"`
	DefectsByType []repository.LabelCount `json:"defectsByType"`
}

// PerformanceKPIs is the performance dashboard view.
type PerformanceKPIs struct {
	CompletionRate   float64                    `json:"completionRate"`
	OperatorActivity []repository.LabelCount    `json:"operatorActivity"`
	AvgDelay         []repository.OperatorDelay `json:"avgDelay"`
}

// DashboardService computes the three KPI views, caching each snapshot
// briefly since the client polls every 30 seconds.
type DashboardService interface {
	Operational(ctx context.Context) (*OperationalKPIs, error)
	Maintenance(ctx context.Context) (*MaintenanceKPIs, error)
	Performance(ctx context.Context) (*PerformanceKPIs, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	cache         *cache.Client
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(dashboardRepo repository.DashboardRepository, cacheClient *cache.Client) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cacheClient,
		now:           time.Now,
	}
}

func (s *dashboardService) Operational(ctx context.Context) (*OperationalKPIs, error) {
	if cached, ok := getCached[OperationalKPIs](ctx, s.cache, "dashboard:operational"); ok {
		return cached, nil
	}

	total, err := s.dashboardRepo.CountEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("count equipment: %w", err)
	}
	alarms, err := s.dashboardRepo.CountActiveAlarms(ctx)
	if err != nil {
		return nil, fmt.Errorf("count alarms: %w", err)
	}
	pending, err := s.dashboardRepo.CountPendingRounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pending rounds: %w", err)
	}
	today, err := s.dashboardRepo.CountRoundsScheduledOn(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("count today rounds: %w", err)
	}

	kpis := &OperationalKPIs{
		Alarms:          alarms,
		PendingRounds:   pending,
		TotalEquipments: total,
		Availability:    Availability(total, alarms),
		TodayRounds:     today,
	}
	setCached(ctx, s.cache, "dashboard:operational", kpis)
	return kpis, nil
}

func (s *dashboardService) Maintenance(ctx context.Context) (*MaintenanceKPIs, error) {
	if cached, ok := getCached[MaintenanceKPIs](ctx, s.cache, "dashboard:maintenance"); ok {
		return cached, nil
	}

	topZones, err := s.dashboardRepo.TopDefectZones(ctx, topListLimit)
	if err != nil {
		return nil, fmt.Errorf("top defect zones: %w", err)
	}
	byType, err := s.dashboardRepo.DefectsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("defects by type: %w", err)
	}

	kpis := &MaintenanceKPIs{
		TopZones:      topZones,
		DefectsByType: byType,
	}
	setCached(ctx, s.cache, "dashboard:maintenance", kpis)
	return kpis, nil
}

func (s *dashboardService) Performance(ctx context.Context) (*PerformanceKPIs, error) {
	if cached, ok := getCached[PerformanceKPIs](ctx, s.cache, "dashboard:performance"); ok {
		return cached, nil
	}

	totalRounds, err := s.dashboardRepo.CountRounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rounds: %w", err)
	}
	reported, err := s.dashboardRepo.CountRoundsWithCurrentReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reported rounds: %w", err)
	}
	activity, err := s.dashboardRepo.TopOperatorsByReports(ctx, topListLimit)
	if err != nil {
		return nil, fmt.Errorf("operator activity: %w", err)
	}
	delays, err := s.dashboardRepo.AvgDelayByOperator(ctx)
	if err != nil {
		return nil, fmt.Errorf("avg delay: %w", err)
	}

	kpis := &PerformanceKPIs{
		CompletionRate:   CompletionRate(totalRounds, reported),
		OperatorActivity: activity,
		AvgDelay:         delays,
	}
	setCached(ctx, s.cache, "dashboard:performance", kpis)
	return kpis, nil
}

// Availability is (total-alarms)/total*100 rounded to one decimal,
// defined as 100 when there is no equipment at all.
func Availability(total, alarms int64) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(total-alarms)/float64(total)*1000) / 10
}

// CompletionRate is the share of rounds with at least one non-obsolete
// report, rounded to one decimal.
func CompletionRate(totalRounds, reportedRounds int64) float64 {
	if totalRounds == 0 {
		return 0
	}
	return math.Round(float64(reportedRounds)/float64(totalRounds)*1000) / 10
}

func getCached[T any](ctx context.Context, c *cache.Client, key string) (*T, bool) {
	data, err := c.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

func setCached(ctx context.Context, c *cache.Client, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, payload, dashboardCacheTTL)
}
