package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TerrainEquipment is an equipment instance placed at percentage
// coordinates on a plan. Live values are mutated only by report
// submission; coordinates by drag-and-drop moves.
type TerrainEquipment struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Name      string           `json:"name" gorm:"size:255;not null"`
	PlanID    uint             `json:"plans_id" gorm:"column:plans_id;not null;index"`
	TypeID    uint             `json:"type_equipements_id" gorm:"column:type_equipements_id;not null;index"`
	Zone      string           `json:"zone" gorm:"size:255;index"`
	PosX      float64          `json:"pos_x" gorm:"not null;default:50"`
	PosY      float64          `json:"pos_y" gorm:"not null;default:50"`
	LiveBool  bool             `json:"live_bool" gorm:"not null;default:true"`
	LiveValue *decimal.Decimal `json:"live_value" gorm:"type:decimal(12,3)"`
	Comment   string           `json:"comment" gorm:"type:text"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Plan Plan          `json:"-" gorm:"foreignKey:PlanID"`
	Type EquipmentType `json:"-" gorm:"foreignKey:TypeID"`
}
