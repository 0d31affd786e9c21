package validate

import (
	"github.com/taskforge-dev/taskforge/internal/apperrors"
	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

// ProjectName checks the slug-normalized name against active projects. The
// unique index on slug_name remains the backstop for concurrent creations;
// excludeID skips the project being updated.
func ProjectName(tx *gorm.DB, slugName string, excludeID uint) error {
	var count int64

	query := tx.Model(&models.Project{}).
		Where("slug_name = ? AND is_active = ?", slugName, true)

	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return apperrors.Validation("Un projet avec ce nom existe déjà.")
	}

	return nil
}
