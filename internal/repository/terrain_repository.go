package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sitewatch/internal/model"
)

// TerrainDetail is a terrain row joined with its type and plan metadata.
type TerrainDetail struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	PlanID    uint             `json:"plans_id"`
	PlanName  string           `json:"plan_name"`
	TypeID    uint             `json:"type_equipements_id"`
	TypeName  string           `json:"type_name"`
	ValueKind model.ValueKind  `json:"equipement_val"`
	Symbol    string           `json:"symbol"`
	Zone      string           `json:"zone"`
	PosX      float64          `json:"pos_x"`
	PosY      float64          `json:"pos_y"`
	LiveBool  bool             `json:"live_bool"`
	LiveValue *decimal.Decimal `json:"live_value"`
	Comment   string           `json:"comment"`
}

// AlarmRow is a defective boolean equipment joined with its location.
type AlarmRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	TypeName string `json:"type_name"`
	Symbol   string `json:"symbol"`
	PlanName string `json:"plan_name"`
	Zone     string `json:"zone"`
	Comment  string `json:"comment"`
}

// TerrainRepository defines terrain equipment persistence operations.
type TerrainRepository interface {
	Create(ctx context.Context, item *model.TerrainEquipment) error
	FindByID(ctx context.Context, id uint) (*model.TerrainEquipment, error)
	ListByPlan(ctx context.Context, planID uint) ([]TerrainDetail, error)
	ListAllDetails(ctx context.Context) ([]TerrainDetail, error)
	FindDetailsByIDs(ctx context.Context, ids []uint) ([]TerrainDetail, error)
	ListActiveAlarms(ctx context.Context) ([]AlarmRow, error)
	UpdatePosition(ctx context.Context, id uint, x, y float64) error
	Delete(ctx context.Context, id uint) error
}

type terrainRepository struct {
	db *gorm.DB
}

// NewTerrainRepository creates a new terrain repository.
func NewTerrainRepository(db *gorm.DB) TerrainRepository {
	return &terrainRepository{db: db}
}

func (r *terrainRepository) Create(ctx context.Context, item *model.TerrainEquipment) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *terrainRepository) FindByID(ctx context.Context, id uint) (*model.TerrainEquipment, error) {
	var item model.TerrainEquipment
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *terrainRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Select(`terrain_equipments.id, terrain_equipments.name,
			terrain_equipments.plans_id AS plan_id, plans.name AS plan_name,
			terrain_equipments.type_equipements_id AS type_id,
			equipment_types.name AS type_name,
			equipment_types.equipement_val AS value_kind,
			equipment_types.symbol, terrain_equipments.zone,
			terrain_equipments.pos_x, terrain_equipments.pos_y,
			terrain_equipments.live_bool, terrain_equipments.live_value,
			terrain_equipments.comment`).
		Joins("LEFT JOIN equipment_types ON equipment_types.id = terrain_equipments.type_equipements_id").
		Joins("LEFT JOIN plans ON plans.id = terrain_equipments.plans_id")
}

func (r *terrainRepository) ListByPlan(ctx context.Context, planID uint) ([]TerrainDetail, error) {
	var items []TerrainDetail
	if err := r.detailQuery(ctx).
		Where("terrain_equipments.plans_id = ?", planID).
		Order("terrain_equipments.zone ASC, terrain_equipments.id ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *terrainRepository) ListAllDetails(ctx context.Context) ([]TerrainDetail, error) {
	var items []TerrainDetail
	if err := r.detailQuery(ctx).
		Order("plans.name ASC, terrain_equipments.zone ASC, terrain_equipments.id ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindDetailsByIDs resolves equipment ids to joined rows ordered by zone.
// IDs with no matching row are silently dropped.
func (r *terrainRepository) FindDetailsByIDs(ctx context.Context, ids []uint) ([]TerrainDetail, error) {
	if len(ids) == 0 {
		return []TerrainDetail{}, nil
	}
	var items []TerrainDetail
	if err := r.detailQuery(ctx).
		Where("terrain_equipments.id IN ?", ids).
		Order("terrain_equipments.zone ASC, terrain_equipments.id ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActiveAlarms returns boolean equipment currently reading false.
func (r *terrainRepository) ListActiveAlarms(ctx context.Context) ([]AlarmRow, error) {
	var alarms []AlarmRow
	if err := r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Select(`terrain_equipments.id, terrain_equipments.name,
			equipment_types.name AS type_name, equipment_types.symbol,
			plans.name AS plan_name, terrain_equipments.zone, terrain_equipments.comment`).
		Joins("LEFT JOIN equipment_types ON equipment_types.id = terrain_equipments.type_equipements_id").
		Joins("LEFT JOIN plans ON plans.id = terrain_equipments.plans_id").
		Where("equipment_types.equipement_val = ? AND terrain_equipments.live_bool = ?", model.ValueKindBool, false).
		Order("terrain_equipments.updated_at DESC").
		Scan(&alarms).Error; err != nil {
		return nil, err
	}
	return alarms, nil
}

func (r *terrainRepository) UpdatePosition(ctx context.Context, id uint, x, y float64) error {
	return r.db.WithContext(ctx).Model(&model.TerrainEquipment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"pos_x": x, "pos_y": y}).Error
}

func (r *terrainRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.TerrainEquipment{}, id).Error
}
