package model

import "time"

// User represents an authenticated user of the facility monitor.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Identifier   string    `json:"identifier" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	RoleID       uint      `json:"role_id" gorm:"not null;default:2;index"`
	ThemeID      uint      `json:"theme_id" gorm:"not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Role  Role  `json:"-" gorm:"foreignKey:RoleID"`
	Theme Theme `json:"-" gorm:"foreignKey:ThemeID"`
}
