package scope

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
	"gorm.io/gorm"
)

// Scope builders compute the set of rows a principal may read. Each takes the
// principal and the explicit query filters and returns a gorm query; an empty
// scope is a silent empty result. Joined tables carry their own deleted_at
// filter because gorm only applies soft-delete filtering to the queried model.

// Users: profiles that are shared and active, plus the caller's own row.
func Users(db *gorm.DB, principal *types.Principal, username string) *gorm.DB {
	query := db.Model(&models.User{})

	if principal != nil {
		query = query.Where("(can_data_be_shared = ? AND is_active = ?) OR users.id = ?", true, true, principal.ID)
	} else {
		query = query.Where("can_data_be_shared = ? AND is_active = ?", true, true)
	}

	if username != "" {
		query = query.Where("username = ?", username)
	}

	return query
}

// Projects: active projects the principal contributes to.
func Projects(db *gorm.DB, principal types.Principal, category, name string) *gorm.DB {
	query := db.Model(&models.Project{}).
		Joins("JOIN contributors ON contributors.project_id = projects.id AND contributors.deleted_at IS NULL").
		Where("contributors.user_id = ? AND projects.is_active = ?", principal.ID, true)

	if category != "" {
		query = query.Where("projects.category = ?", category)
	}

	if name != "" {
		query = query.Where("projects.name = ?", name)
	}

	return query
}

// Contributors: rows of active projects the principal authors. Only the owner
// may enumerate who contributes.
func Contributors(db *gorm.DB, principal types.Principal, projectID uint) *gorm.DB {
	query := db.Model(&models.Contributor{}).
		Joins("JOIN projects ON projects.id = contributors.project_id AND projects.deleted_at IS NULL").
		Where("projects.author_id = ? AND projects.is_active = ?", principal.ID, true)

	if projectID != 0 {
		query = query.Where("contributors.project_id = ?", projectID)
	}

	return query
}

// Issues: issues of the principal's active contributed projects.
func Issues(db *gorm.DB, principal types.Principal, issueID uint, projectName string) *gorm.DB {
	query := db.Model(&models.Issue{}).
		Joins("JOIN projects ON projects.id = issues.project_id AND projects.deleted_at IS NULL").
		Joins("JOIN contributors ON contributors.project_id = projects.id AND contributors.deleted_at IS NULL").
		Where("contributors.user_id = ? AND projects.is_active = ?", principal.ID, true)

	if issueID != 0 {
		query = query.Where("issues.id = ?", issueID)
	}

	if projectName != "" {
		query = query.Where("projects.name = ?", projectName)
	}

	return query
}

// Comments: comments on issues of the principal's active contributed projects.
func Comments(db *gorm.DB, principal types.Principal, commentID uint) *gorm.DB {
	query := db.Model(&models.Comment{}).
		Joins("JOIN issues ON issues.id = comments.issue_id AND issues.deleted_at IS NULL").
		Joins("JOIN projects ON projects.id = issues.project_id AND projects.deleted_at IS NULL").
		Joins("JOIN contributors ON contributors.project_id = projects.id AND contributors.deleted_at IS NULL").
		Where("contributors.user_id = ? AND projects.is_active = ?", principal.ID, true)

	if commentID != 0 {
		query = query.Where("comments.id = ?", commentID)
	}

	return query
}
