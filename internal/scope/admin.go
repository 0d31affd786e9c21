package scope

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"gorm.io/gorm"
)

// Admin scopes bypass visibility entirely and only honor the explicit filters.

func AdminUsers(db *gorm.DB, username string) *gorm.DB {
	query := db.Model(&models.User{})

	if username != "" {
		query = query.Where("username = ?", username)
	}

	return query
}

func AdminProjects(db *gorm.DB, category, name string) *gorm.DB {
	query := db.Model(&models.Project{})

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if name != "" {
		query = query.Where("name = ?", name)
	}

	return query
}

func AdminContributors(db *gorm.DB, projectID uint) *gorm.DB {
	query := db.Model(&models.Contributor{})

	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	}

	return query
}

func AdminIssues(db *gorm.DB, issueID uint, projectName string) *gorm.DB {
	query := db.Model(&models.Issue{})

	if issueID != 0 {
		query = query.Where("issues.id = ?", issueID)
	}

	if projectName != "" {
		query = query.
			Joins("JOIN projects ON projects.id = issues.project_id AND projects.deleted_at IS NULL").
			Where("projects.name = ?", projectName)
	}

	return query
}

func AdminComments(db *gorm.DB, commentID uint) *gorm.DB {
	query := db.Model(&models.Comment{})

	if commentID != 0 {
		query = query.Where("id = ?", commentID)
	}

	return query
}
