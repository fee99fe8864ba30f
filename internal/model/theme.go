package model

// DefaultThemeID is assigned to newly registered users.
const DefaultThemeID uint = 1

// Theme is a selectable UI theme; CSSValue is handed to the client as-is.
type Theme struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;not null"`
	CSSValue string `json:"css_value" gorm:"column:css_value;size:100;not null"`
}
