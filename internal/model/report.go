package model

import (
	"time"

	"gorm.io/datatypes"
)

// ReportState represents the validity of a submitted report.
// valide|modifie -> obsolete is the only transition; modifie is the
// terminal non-obsolete state produced by amendment.
type ReportState string

const (
	ReportStateValid    ReportState = "valide"
	ReportStateAmended  ReportState = "modifie"
	ReportStateObsolete ReportState = "obsolete"
)

// ReportEntry is one per-equipment answer inside a report.
// Status "1" means OK, "0" means defect; Value carries the analog
// reading as entered, empty when not applicable.
type ReportEntry struct {
	EquipmentID uint   `json:"id"`
	Status      string `json:"status"`
	Value       string `json:"value"`
	Comment     string `json:"comment"`
}

// Report holds an operator's submitted findings for a round.
// CreatedAt doubles as the executed timestamp.
type Report struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	RoundID    uint           `json:"demande_id" gorm:"column:demande_id;not null;index"`
	OperatorID uint           `json:"operator_id" gorm:"not null;index"`
	Data       datatypes.JSON `json:"report_data" gorm:"column:report_data;not null"`
	State      ReportState    `json:"etat" gorm:"column:etat;type:varchar(20);not null;default:'valide';index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	// Relations
	Round    Round `json:"-" gorm:"foreignKey:RoundID"`
	Operator User  `json:"-" gorm:"foreignKey:OperatorID"`
}
