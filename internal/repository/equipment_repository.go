package repository

import (
	"context"

	"gorm.io/gorm"

	"sitewatch/internal/model"
)

// EquipmentTypeRepository defines equipment-type persistence operations.
type EquipmentTypeRepository interface {
	Create(ctx context.Context, equipmentType *model.EquipmentType) error
	FindByID(ctx context.Context, id uint) (*model.EquipmentType, error)
	List(ctx context.Context) ([]model.EquipmentType, error)
	Delete(ctx context.Context, id uint) error
}

type equipmentTypeRepository struct {
	db *gorm.DB
}

// NewEquipmentTypeRepository creates a new equipment type repository.
func NewEquipmentTypeRepository(db *gorm.DB) EquipmentTypeRepository {
	return &equipmentTypeRepository{db: db}
}

func (r *equipmentTypeRepository) Create(ctx context.Context, equipmentType *model.EquipmentType) error {
	return r.db.WithContext(ctx).Create(equipmentType).Error
}

func (r *equipmentTypeRepository) FindByID(ctx context.Context, id uint) (*model.EquipmentType, error) {
	var equipmentType model.EquipmentType
	if err := r.db.WithContext(ctx).First(&equipmentType, id).Error; err != nil {
		return nil, err
	}
	return &equipmentType, nil
}

func (r *equipmentTypeRepository) List(ctx context.Context) ([]model.EquipmentType, error) {
	var types []model.EquipmentType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *equipmentTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.EquipmentType{}, id).Error
}
