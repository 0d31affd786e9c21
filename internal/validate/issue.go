package validate

import (
	"fmt"
	"strings"

	"github.com/taskforge-dev/taskforge/internal/apperrors"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"gorm.io/gorm"
)

func notAContributor(username, projectName string, valid []string) error {
	return apperrors.Validation(fmt.Sprintf(
		"%s n'est pas contributeur du projet %s. Contributeurs valides : %s.",
		username, projectName, strings.Join(valid, ", "),
	))
}

// IssueMembers checks that the author and the optional assignee each belong to
// the project's contributor set. The error names the offending user and lists
// the valid usernames.
func IssueMembers(tx *gorm.DB, project models.Project, author models.User, assignedTo *models.User) error {
	ids, err := scope.ContributorIDs(tx, project.ID)

	if err != nil {
		return err
	}

	members := make(map[uint]bool, len(ids))

	for _, id := range ids {
		members[id] = true
	}

	if !members[author.ID] {
		usernames, err := scope.ContributorUsernames(tx, project.ID)

		if err != nil {
			return err
		}

		return notAContributor(author.Username, project.Name, usernames)
	}

	if assignedTo != nil && !members[assignedTo.ID] {
		usernames, err := scope.ContributorUsernames(tx, project.ID)

		if err != nil {
			return err
		}

		return notAContributor(assignedTo.Username, project.Name, usernames)
	}

	return nil
}
