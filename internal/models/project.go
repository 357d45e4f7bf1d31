package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project represents a purchasable, downloadable software project in the catalog.
// List-valued attributes are stored as JSON columns. The DownloadLink points at
// an externally hosted asset; the store never streams the file itself.
type Project struct {
	ID               string                      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title            string                      `json:"title" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Description      string                      `json:"description" validate:"required"`
	ShortDescription string                      `json:"shortDescription" gorm:"type:varchar(500)" validate:"required,max=500"`
	Price            float64                     `json:"price" validate:"required,gt=0"`
	Category         string                      `json:"category" gorm:"type:varchar(100)"`
	TechStack        datatypes.JSONSlice[string] `json:"techStack"`
	Difficulty       string                      `json:"difficulty" gorm:"type:varchar(50)"`
	Features         datatypes.JSONSlice[string] `json:"features"`
	DemoURL          string                      `json:"demoUrl,omitempty" gorm:"type:varchar(500)" validate:"omitempty,url"`
	ThumbnailURL     string                      `json:"thumbnail" gorm:"type:varchar(500)"`
	Screenshots      datatypes.JSONSlice[string] `json:"screenshots"`
	DownloadLink     string                      `json:"downloadLink,omitempty" gorm:"type:varchar(500)"`
	IsPopular        bool                        `json:"isPopular"`
	IsActive         bool                        `json:"-" gorm:"default:true;index"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

// ListView returns the project shaped for the public catalog listing,
// which never exposes the download link.
func (p Project) ListView() Project {
	p.DownloadLink = ""
	return p
}
