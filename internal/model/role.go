package model

// Reference role IDs. Roles are fixed reference data seeded at startup;
// SuperAdminRoleID is protected and can never be reassigned.
const (
	DefaultRoleID    uint = 2
	OperatorRoleID   uint = 3
	AdminRoleID      uint = 4
	SuperAdminRoleID uint = 5
)

// Role carries the coarse capability flags granted to its users.
type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null"`
	Write       bool   `json:"write" gorm:"not null;default:false"`
	Read        bool   `json:"read" gorm:"not null;default:true"`
	Export      bool   `json:"export" gorm:"not null;default:false"`
	AdminRights bool   `json:"admin_rights" gorm:"not null;default:false"`
}
