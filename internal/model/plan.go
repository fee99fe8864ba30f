package model

import "time"

// Plan is an uploaded floor-plan image used as a backdrop for terrain markers.
// ImgLink is the relative path under which the image is served statically.
type Plan struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	ImgLink   string    `json:"img_link" gorm:"size:512;not null"`
	CreatedAt time.Time `json:"created_at"`
}
