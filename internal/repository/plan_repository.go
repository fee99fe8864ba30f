package repository

import (
	"context"

	"gorm.io/gorm"

	"sitewatch/internal/model"
)

// PlanRepository defines plan persistence operations.
type PlanRepository interface {
	Create(ctx context.Context, plan *model.Plan) error
	FindByID(ctx context.Context, id uint) (*model.Plan, error)
	List(ctx context.Context) ([]model.Plan, error)
	Delete(ctx context.Context, id uint) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) FindByID(ctx context.Context, id uint) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns plans newest first.
func (r *planRepository) List(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Delete removes the plan row and any terrain equipment placed on it.
func (r *planRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plans_id = ?", id).Delete(&model.TerrainEquipment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Plan{}, id).Error
	})
}
