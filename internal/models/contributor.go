package models

import "gorm.io/gorm"

// Contributor links a user to a project. The project author always has a row,
// created in the same transaction as the project itself.
type Contributor struct {
	gorm.Model

	UserID    uint `gorm:"not null;uniqueIndex:idx_contributor_project"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_contributor_project"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
