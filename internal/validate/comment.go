package validate

import (
	"fmt"

	"github.com/taskforge-dev/taskforge/internal/apperrors"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"gorm.io/gorm"
)

// CommentAuthor checks that the author contributes to the project of the
// commented issue. The issue must carry its Project.
func CommentAuthor(tx *gorm.DB, issue models.Issue, author models.User) error {
	ok, err := scope.IsContributor(tx, issue.ProjectID, author.ID)

	if err != nil {
		return err
	}

	if !ok {
		return apperrors.Validation(fmt.Sprintf(
			"%s n'est pas contributeur du projet %s.",
			author.Username, issue.Project.Name,
		))
	}

	return nil
}
