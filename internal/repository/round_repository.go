package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitewatch/internal/model"
)

// AssignedRound is a pending round joined with its creator's identifier.
type AssignedRound struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	ScheduledDate time.Time      `json:"scheduled_date"`
	Status        string         `json:"status"`
	CreatorName   string         `json:"creator_name"`
	EquipmentIDs  datatypes.JSON `json:"equipments_ids"`
}

// ReportRow is a report joined with its round and operator names.
type ReportRow struct {
	ID           uint           `json:"id"`
	RoundID      uint           `json:"demande_id"`
	RoundName    string         `json:"round_name"`
	OperatorID   uint           `json:"operator_id"`
	OperatorName string         `json:"operator_name"`
	Data         datatypes.JSON `json:"report_data"`
	State        string         `json:"etat"`
	CreatedAt    time.Time      `json:"created_at"`
}

// RoundRepository defines round and report persistence operations.
// Report application also touches terrain live values; those writes
// belong to the lifecycle and are exposed here so a single transaction
// can cover the whole submit/amend sequence.
type RoundRepository interface {
	Create(ctx context.Context, round *model.Round) error
	FindByID(ctx context.Context, id uint) (*model.Round, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Round, error)
	ListAssigned(ctx context.Context, operatorID uint) ([]AssignedRound, error)
	UpdateStatus(ctx context.Context, id uint, status model.RoundStatus) error
	CountAll(ctx context.Context) (int64, error)

	CreateReport(ctx context.Context, report *model.Report) error
	FindReportByID(ctx context.Context, id uint) (*model.Report, error)
	FindReportByIDForUpdate(ctx context.Context, id uint) (*model.Report, error)
	UpdateReportState(ctx context.Context, id uint, state model.ReportState) error
	ListReports(ctx context.Context) ([]ReportRow, error)

	UpdateEquipmentLive(ctx context.Context, equipmentID uint, liveBool bool, liveValue *decimal.Decimal, comment string) error

	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RoundRepository) error) error
}

type roundRepository struct {
	db *gorm.DB
}

// NewRoundRepository creates a new round repository.
func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) Create(ctx context.Context, round *model.Round) error {
	return r.db.WithContext(ctx).Create(round).Error
}

func (r *roundRepository) FindByID(ctx context.Context, id uint) (*model.Round, error) {
	var round model.Round
	if err := r.db.WithContext(ctx).First(&round, id).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

// FindByIDForUpdate locks the round row for the rest of the transaction.
func (r *roundRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Round, error) {
	var round model.Round
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&round).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

// ListAssigned returns non-completed rounds for an operator, oldest
// scheduled date first.
func (r *roundRepository) ListAssigned(ctx context.Context, operatorID uint) ([]AssignedRound, error) {
	var rounds []AssignedRound
	if err := r.db.WithContext(ctx).Model(&model.Round{}).
		Select(`rounds.id, rounds.name, rounds.scheduled_date, rounds.status,
			users.identifier AS creator_name, rounds.equipment_ids`).
		Joins("LEFT JOIN users ON users.id = rounds.creator_id").
		Where("rounds.operator_id = ? AND rounds.status <> ?", operatorID, model.RoundStatusCompleted).
		Order("rounds.scheduled_date ASC").
		Scan(&rounds).Error; err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *roundRepository) UpdateStatus(ctx context.Context, id uint, status model.RoundStatus) error {
	return r.db.WithContext(ctx).Model(&model.Round{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *roundRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Round{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *roundRepository) CreateReport(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *roundRepository) FindReportByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// FindReportByIDForUpdate locks the report row; amendment uses this to
// guarantee the superseded report is still current.
func (r *roundRepository) FindReportByIDForUpdate(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *roundRepository) UpdateReportState(ctx context.Context, id uint, state model.ReportState) error {
	return r.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ?", id).
		Update("etat", state).Error
}

func (r *roundRepository) ListReports(ctx context.Context) ([]ReportRow, error) {
	var reports []ReportRow
	if err := r.db.WithContext(ctx).Model(&model.Report{}).
		Select(`reports.id, reports.demande_id AS round_id, rounds.name AS round_name,
			reports.operator_id, users.identifier AS operator_name,
			reports.report_data AS data, reports.etat AS state, reports.created_at`).
		Joins("LEFT JOIN rounds ON rounds.id = reports.demande_id").
		Joins("LEFT JOIN users ON users.id = reports.operator_id").
		Order("reports.created_at DESC").
		Scan(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateEquipmentLive overwrites an equipment's live reading from a
// report answer.
func (r *roundRepository) UpdateEquipmentLive(ctx context.Context, equipmentID uint, liveBool bool, liveValue *decimal.Decimal, comment string) error {
	return r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Where("id = ?", equipmentID).
		Updates(map[string]interface{}{
			"live_bool":  liveBool,
			"live_value": liveValue,
			"comment":    comment,
		}).Error
}

// WithTransaction executes a function within a database transaction.
func (r *roundRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RoundRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &roundRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
