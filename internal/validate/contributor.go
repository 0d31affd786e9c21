package validate

import (
	"github.com/taskforge-dev/taskforge/internal/apperrors"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"github.com/taskforge-dev/taskforge/internal/types"
	"gorm.io/gorm"
)

// NewContributor checks a contributor creation against the submitted data:
// only the project author may add contributors, the author cannot re-add
// themself, and the pair must not already exist. adminFlow lifts the
// self-addition restriction.
func NewContributor(tx *gorm.DB, principal types.Principal, project models.Project, candidate models.User, adminFlow bool) error {
	if !adminFlow && principal.ID != project.AuthorID {
		return apperrors.Validation("Vous n'êtes pas l'auteur du projet.")
	}

	if !adminFlow && candidate.ID == principal.ID {
		return apperrors.Validation("Vous ne pouvez pas vous ajouter comme contributeur.")
	}

	exists, err := scope.IsContributor(tx, project.ID, candidate.ID)

	if err != nil {
		return err
	}

	if exists {
		return apperrors.Validation("Cet utilisateur est déjà contributeur du projet.")
	}

	return nil
}

// ContributorRemoval refuses removing the project author's own row. The author
// stays a contributor of their project for as long as the project exists; the
// contributor must carry its Project.
func ContributorRemoval(contributor models.Contributor) error {
	if contributor.UserID == contributor.Project.AuthorID {
		return apperrors.Validation("L'auteur du projet ne peut pas être retiré des contributeurs.")
	}

	return nil
}
