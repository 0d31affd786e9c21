package models

import "gorm.io/gorm"

// Issue tracks a bug, feature or task inside a project. Author and assignee
// must be contributors of the project; that rule lives in validation, not in
// a foreign key.
type Issue struct {
	gorm.Model

	ProjectID    uint `gorm:"not null;index"`
	AuthorID     uint `gorm:"not null;index"`
	AssignedToID *uint
	Name         string `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null;default:'To Do'"` // "To Do", "In Progress", "Finished"
	Priority     string `gorm:"not null"`                 // "Low", "Medium", "High"
	Category     string `gorm:"not null"`                 // "Bug", "Feature", "Task"

	// Relationships
	Project    Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo *User     `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Comments   []Comment `gorm:"foreignKey:IssueID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
