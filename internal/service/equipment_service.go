package service

import (
	"context"
	"fmt"

	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// EquipmentService handles equipment-type definitions and terrain
// placements.
type EquipmentService interface {
	ListTypes(ctx context.Context) ([]model.EquipmentType, error)
	CreateType(ctx context.Context, name string, valueKind model.ValueKind, symbol, comment string) (*model.EquipmentType, error)
	DeleteType(ctx context.Context, id uint) error

	ListTerrainByPlan(ctx context.Context, planID uint) ([]repository.TerrainDetail, error)
	ListAllTerrainDetails(ctx context.Context) ([]repository.TerrainDetail, error)
	CreateTerrainItem(ctx context.Context, name string, planID, typeID uint, zone, comment string) (*model.TerrainEquipment, error)
	MoveTerrainItem(ctx context.Context, id uint, x, y float64) error
	DeleteTerrainItem(ctx context.Context, id uint) error

	ListActiveAlarms(ctx context.Context) ([]repository.AlarmRow, error)
}

type equipmentService struct {
	typeRepo    repository.EquipmentTypeRepository
	terrainRepo repository.TerrainRepository
}

// NewEquipmentService creates a new equipment service.
func NewEquipmentService(typeRepo repository.EquipmentTypeRepository, terrainRepo repository.TerrainRepository) EquipmentService {
	return &equipmentService{typeRepo: typeRepo, terrainRepo: terrainRepo}
}

func (s *equipmentService) ListTypes(ctx context.Context) ([]model.EquipmentType, error) {
	return s.typeRepo.List(ctx)
}

// CreateType inserts an equipment type; value kind defaults to boolean.
func (s *equipmentService) CreateType(ctx context.Context, name string, valueKind model.ValueKind, symbol, comment string) (*model.EquipmentType, error) {
	if valueKind != model.ValueKindAnalog {
		valueKind = model.ValueKindBool
	}
	equipmentType := &model.EquipmentType{
		Name:      name,
		ValueKind: valueKind,
		Symbol:    symbol,
		Comment:   comment,
	}
	if err := s.typeRepo.Create(ctx, equipmentType); err != nil {
		return nil, fmt.Errorf("create equipment type: %w", err)
	}
	return equipmentType, nil
}

func (s *equipmentService) DeleteType(ctx context.Context, id uint) error {
	return s.typeRepo.Delete(ctx, id)
}

func (s *equipmentService) ListTerrainByPlan(ctx context.Context, planID uint) ([]repository.TerrainDetail, error) {
	return s.terrainRepo.ListByPlan(ctx, planID)
}

func (s *equipmentService) ListAllTerrainDetails(ctx context.Context) ([]repository.TerrainDetail, error) {
	return s.terrainRepo.ListAllDetails(ctx)
}

// CreateTerrainItem places equipment at the default center coordinates;
// the client repositions it by drag-and-drop afterwards.
func (s *equipmentService) CreateTerrainItem(ctx context.Context, name string, planID, typeID uint, zone, comment string) (*model.TerrainEquipment, error) {
	item := &model.TerrainEquipment{
		Name:     name,
		PlanID:   planID,
		TypeID:   typeID,
		Zone:     zone,
		PosX:     50,
		PosY:     50,
		LiveBool: true,
		Comment:  comment,
	}
	if err := s.terrainRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create terrain item: %w", err)
	}
	return item, nil
}

// MoveTerrainItem overwrites coordinates unconditionally; the client is
// responsible for clamping to [0,100].
func (s *equipmentService) MoveTerrainItem(ctx context.Context, id uint, x, y float64) error {
	return s.terrainRepo.UpdatePosition(ctx, id, x, y)
}

func (s *equipmentService) DeleteTerrainItem(ctx context.Context, id uint) error {
	return s.terrainRepo.Delete(ctx, id)
}

func (s *equipmentService) ListActiveAlarms(ctx context.Context) ([]repository.AlarmRow, error) {
	return s.terrainRepo.ListActiveAlarms(ctx)
}
