package guard

import (
	"testing"

	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
	"gorm.io/gorm"
)

func user(id uint) models.User {
	return models.User{Model: gorm.Model{ID: id}}
}

func TestCanWriteUser(t *testing.T) {
	alice := types.Principal{ID: 1, Username: "alice"}

	if !CanWriteUser(alice, user(1)) {
		t.Fatal("a user must be able to write their own row")
	}

	if CanWriteUser(alice, user(2)) {
		t.Fatal("a user must not write another user's row")
	}
}

func TestCanWriteProject(t *testing.T) {
	cases := []struct {
		name      string
		principal types.Principal
		authorID  uint
		allow     bool
	}{
		{name: "author", principal: types.Principal{ID: 1}, authorID: 1, allow: true},
		{name: "contributor", principal: types.Principal{ID: 2}, authorID: 1, allow: false},
		{name: "superuser is not the author", principal: types.Principal{ID: 3, IsSuperuser: true}, authorID: 1, allow: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			project := models.Project{AuthorID: tc.authorID}

			if got := CanWriteProject(tc.principal, project); got != tc.allow {
				t.Fatalf("CanWriteProject = %v, want %v", got, tc.allow)
			}
		})
	}
}

func TestCanWriteContributor(t *testing.T) {
	contributor := models.Contributor{
		UserID:  2,
		Project: models.Project{AuthorID: 1},
	}

	if !CanWriteContributor(types.Principal{ID: 1}, contributor) {
		t.Fatal("the project author must manage contributors")
	}

	// Not even the contributor themself may remove their own row.
	if CanWriteContributor(types.Principal{ID: 2}, contributor) {
		t.Fatal("a non-author must not manage contributors")
	}
}

func TestCanWriteIssueAndComment(t *testing.T) {
	issue := models.Issue{AuthorID: 5}
	comment := models.Comment{AuthorID: 7}

	if !CanWriteIssue(types.Principal{ID: 5}, issue) || CanWriteIssue(types.Principal{ID: 6}, issue) {
		t.Fatal("only the issue author may write the issue")
	}

	if !CanWriteComment(types.Principal{ID: 7}, comment) || CanWriteComment(types.Principal{ID: 5}, comment) {
		t.Fatal("only the comment author may write the comment")
	}
}
