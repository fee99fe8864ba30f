package model

// ValueKind classifies what an equipment instance measures.
type ValueKind string

const (
	// ValueKindBool marks on/off equipment; a false live value is an alarm.
	ValueKindBool ValueKind = "bool"
	// ValueKindAnalog marks equipment carrying a numeric reading.
	ValueKindAnalog ValueKind = "analog"
)

// EquipmentType is a reusable equipment definition placed on plans.
type EquipmentType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	ValueKind ValueKind `json:"equipement_val" gorm:"column:equipement_val;type:varchar(20);not null;default:'bool'"`
	Symbol    string    `json:"symbol" gorm:"size:100;not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
}
