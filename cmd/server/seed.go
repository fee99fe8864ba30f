package main

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitewatch/internal/model"
)

// seedReferenceData provisions the fixed role and theme rows. Existing
// rows are left untouched so local edits survive restarts.
func seedReferenceData(db *gorm.DB) error {
	roles := []model.Role{
		{ID: 1, Name: "Viewer", Read: true},
		{ID: 2, Name: "User", Read: true, Write: true},
		{ID: 3, Name: "Operator", Read: true, Write: true},
		{ID: 4, Name: "Admin", Read: true, Write: true, Export: true},
		{ID: 5, Name: "Super Admin", Read: true, Write: true, Export: true, AdminRights: true},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return err
	}

	themes := []model.Theme{
		{ID: 1, Name: "Light", CSSValue: "light"},
		{ID: 2, Name: "Dark", CSSValue: "dark"},
		{ID: 3, Name: "Contrast", CSSValue: "contrast"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&themes).Error
}
