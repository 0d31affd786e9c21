package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	AuthorID    uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	SlugName    string `gorm:"uniqueIndex;not null"` // normalized name, backs the uniqueness constraint
	Description string
	Category    string `gorm:"not null"` // "Back-end", "Front-end", "iOS", "Android"
	IsActive    bool   `gorm:"default:true"`

	// Relationships
	Author       User          `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contributors []Contributor `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Issues       []Issue       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
