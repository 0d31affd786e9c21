package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model

	IssueID     uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null;index"`
	Description string `gorm:"not null"`
	IssueURL    string // reference URL of the parent issue, derived at creation
	UUID        *uint  // stamped with the row's own id right after insert

	// Relationships
	Issue  Issue `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
