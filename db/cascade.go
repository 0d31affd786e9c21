package db

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

// Deletes here are gorm soft deletes, so the database-level cascade constraints
// never fire. These helpers walk the aggregates explicitly; callers run them
// inside a transaction.

// DeleteIssueCascade removes an issue and its comments.
func DeleteIssueCascade(tx *gorm.DB, issueID uint) error {
	if err := tx.Where("issue_id = ?", issueID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Issue{}, issueID).Error
}

// DeleteProjectCascade removes a project, its contributor rows, its issues and
// their comments.
func DeleteProjectCascade(tx *gorm.DB, projectID uint) error {
	var issueIDs []uint

	if err := tx.Model(&models.Issue{}).Where("project_id = ?", projectID).Pluck("id", &issueIDs).Error; err != nil {
		return err
	}

	if len(issueIDs) > 0 {
		if err := tx.Where("issue_id IN ?", issueIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Issue{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("project_id = ?", projectID).Delete(&models.Contributor{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Project{}, projectID).Error
}

// DeleteUserCascade removes a user together with everything they authored.
// Issues merely assigned to the user keep existing with a cleared assignment.
func DeleteUserCascade(tx *gorm.DB, userID uint) error {
	var projectIDs []uint

	if err := tx.Model(&models.Project{}).Where("author_id = ?", userID).Pluck("id", &projectIDs).Error; err != nil {
		return err
	}

	for _, projectID := range projectIDs {
		if err := DeleteProjectCascade(tx, projectID); err != nil {
			return err
		}
	}

	if err := tx.Model(&models.Issue{}).Where("assigned_to_id = ?", userID).Update("assigned_to_id", nil).Error; err != nil {
		return err
	}

	var issueIDs []uint

	if err := tx.Model(&models.Issue{}).Where("author_id = ?", userID).Pluck("id", &issueIDs).Error; err != nil {
		return err
	}

	for _, issueID := range issueIDs {
		if err := DeleteIssueCascade(tx, issueID); err != nil {
			return err
		}
	}

	if err := tx.Where("author_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Contributor{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.User{}, userID).Error
}
