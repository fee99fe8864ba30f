package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sitewatch/internal/model"
)

// LabelCount is a generic group-by row for dashboard charts.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// OperatorDelay is the average scheduled-to-executed delay per operator.
// Negative days mean rounds executed ahead of schedule.
type OperatorDelay struct {
	Label   string  `json:"label"`
	AvgDays float64 `json:"avg_days"`
}

// DashboardRepository defines the read-only aggregate queries behind the
// KPI views.
type DashboardRepository interface {
	CountEquipment(ctx context.Context) (int64, error)
	CountActiveAlarms(ctx context.Context) (int64, error)
	CountPendingRounds(ctx context.Context) (int64, error)
	CountRoundsScheduledOn(ctx context.Context, day time.Time) (int64, error)
	CountRounds(ctx context.Context) (int64, error)
	CountRoundsWithCurrentReport(ctx context.Context) (int64, error)
	TopDefectZones(ctx context.Context, limit int) ([]LabelCount, error)
	DefectsByType(ctx context.Context) ([]LabelCount, error)
	TopOperatorsByReports(ctx context.Context, limit int) ([]LabelCount, error)
	AvgDelayByOperator(ctx context.Context) ([]OperatorDelay, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountEquipment(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).Count(&count).Error
	return count, err
}

// CountActiveAlarms counts boolean equipment currently reading false.
func (r *dashboardRepository) CountActiveAlarms(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Joins("JOIN equipment_types ON equipment_types.id = terrain_equipments.type_equipements_id").
		Where("equipment_types.equipement_val = ? AND terrain_equipments.live_bool = ?", model.ValueKindBool, false).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountPendingRounds(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Round{}).
		Where("status <> ?", model.RoundStatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountRoundsScheduledOn(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Round{}).
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountRounds(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Round{}).Count(&count).Error
	return count, err
}

// CountRoundsWithCurrentReport counts distinct rounds having at least one
// non-obsolete report.
func (r *dashboardRepository) CountRoundsWithCurrentReport(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("etat <> ?", model.ReportStateObsolete).
		Distinct("demande_id").
		Count(&count).Error
	return count, err
}

// TopDefectZones ranks (plan, zone) pairs by active defect count.
func (r *dashboardRepository) TopDefectZones(ctx context.Context, limit int) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Select("CONCAT(plans.name, ' - ', terrain_equipments.zone) AS label, COUNT(*) AS count").
		Joins("JOIN equipment_types ON equipment_types.id = terrain_equipments.type_equipements_id").
		Joins("LEFT JOIN plans ON plans.id = terrain_equipments.plans_id").
		Where("equipment_types.equipement_val = ? AND terrain_equipments.live_bool = ?", model.ValueKindBool, false).
		Group("plans.name, terrain_equipments.zone").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) DefectsByType(ctx context.Context) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Select("equipment_types.name AS label, COUNT(*) AS count").
		Joins("JOIN equipment_types ON equipment_types.id = terrain_equipments.type_equipements_id").
		Where("equipment_types.equipement_val = ? AND terrain_equipments.live_bool = ?", model.ValueKindBool, false).
		Group("equipment_types.name").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// TopOperatorsByReports ranks operators by non-obsolete report count.
func (r *dashboardRepository) TopOperatorsByReports(ctx context.Context, limit int) ([]LabelCount, error) {
	var rows []LabelCount
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Select("users.identifier AS label, COUNT(*) AS count").
		Joins("JOIN users ON users.id = reports.operator_id").
		Where("reports.etat <> ?", model.ReportStateObsolete).
		Group("users.identifier").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// AvgDelayByOperator averages the gap in days between a round's scheduled
// date and its report's executed timestamp, over non-obsolete reports.
func (r *dashboardRepository) AvgDelayByOperator(ctx context.Context) ([]OperatorDelay, error) {
	var rows []OperatorDelay
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Select("users.identifier AS label, ROUND(AVG(DATEDIFF(reports.created_at, rounds.scheduled_date)), 1) AS avg_days").
		Joins("JOIN rounds ON rounds.id = reports.demande_id").
		Joins("JOIN users ON users.id = reports.operator_id").
		Where("reports.etat <> ?", model.ReportStateObsolete).
		Group("users.identifier").
		Order("avg_days DESC").
		Scan(&rows).Error
	return rows, err
}
