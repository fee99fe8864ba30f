package model

import (
	"time"

	"gorm.io/datatypes"
)

// RoundStatus represents the lifecycle state of a round.
// The transition is one-way: pending -> completed on first submission.
type RoundStatus string

const (
	RoundStatusPending   RoundStatus = "pending"
	RoundStatusCompleted RoundStatus = "completed"
)

// Round is a scheduled inspection assigning a set of terrain equipment
// to an operator for a given date. EquipmentIDs is always stored as a
// JSON integer array.
type Round struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"size:255;not null"`
	OperatorID    uint           `json:"operator_id" gorm:"not null;index"`
	CreatorID     uint           `json:"creator_id" gorm:"not null;index"`
	ScheduledDate time.Time      `json:"scheduled_date" gorm:"not null;index"`
	Status        RoundStatus    `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	EquipmentIDs  datatypes.JSON `json:"equipments_ids" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Relations
	Operator User `json:"-" gorm:"foreignKey:OperatorID"`
	Creator  User `json:"-" gorm:"foreignKey:CreatorID"`
}
