package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username        string `gorm:"uniqueIndex;not null"`
	Email           string `gorm:"not null"`
	FirstName       string
	LastName        string
	Birthdate       *datatypes.Date
	CanBeContacted  bool
	CanDataBeShared bool
	Image           string // URL of the profile picture, resizing happens upstream
	IsActive        bool   `gorm:"default:true"`
	IsStaff         bool
	IsSuperuser     bool
	PasswordHash    string `gorm:"not null"`

	// Relationships
	Projects      []Project     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contributions []Contributor `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
