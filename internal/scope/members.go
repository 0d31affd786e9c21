package scope

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

// Allowed-id helpers consumed by validation. They replace per-request field
// restriction: validation compares submitted data against these sets.

// ContributorIDs returns the user ids contributing to the project.
func ContributorIDs(db *gorm.DB, projectID uint) ([]uint, error) {
	var ids []uint

	err := db.Model(&models.Contributor{}).
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error

	return ids, err
}

// ContributorUsernames returns the usernames contributing to the project,
// ordered for stable error payloads.
func ContributorUsernames(db *gorm.DB, projectID uint) ([]string, error) {
	var usernames []string

	err := db.Model(&models.Contributor{}).
		Joins("JOIN users ON users.id = contributors.user_id AND users.deleted_at IS NULL").
		Where("contributors.project_id = ?", projectID).
		Order("users.username").
		Pluck("users.username", &usernames).Error

	return usernames, err
}

// IsContributor reports whether the user contributes to the project.
func IsContributor(db *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64

	err := db.Model(&models.Contributor{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	return count > 0, err
}
