package guard

import (
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
)

// Object-level write checks. Create operations always pass here; what may be
// created is validation's concern.

// CanWriteUser: a user only writes their own row.
func CanWriteUser(principal types.Principal, user models.User) bool {
	return principal.ID == user.ID
}

func CanWriteProject(principal types.Principal, project models.Project) bool {
	return principal.ID == project.AuthorID
}

// CanWriteContributor requires the contributor's Project to be loaded.
func CanWriteContributor(principal types.Principal, contributor models.Contributor) bool {
	return principal.ID == contributor.Project.AuthorID
}

func CanWriteIssue(principal types.Principal, issue models.Issue) bool {
	return principal.ID == issue.AuthorID
}

func CanWriteComment(principal types.Principal, comment models.Comment) bool {
	return principal.ID == comment.AuthorID
}
