package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
	"gorm.io/gorm"
)

func sampleUser() models.User {
	return models.User{
		Model:           gorm.Model{ID: 1, CreatedAt: time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)},
		Username:        "alice",
		Email:           "alice@example.com",
		FirstName:       "Alice",
		LastName:        "Martin",
		CanBeContacted:  false,
		CanDataBeShared: true,
		PasswordHash:    "$2a$10$secret",
	}
}

func TestUserEmailRedaction(t *testing.T) {
	user := sampleUser()

	self := &types.Principal{ID: 1, Username: "alice"}
	other := &types.Principal{ID: 2, Username: "bob"}
	admin := &types.Principal{ID: 3, Username: "root", IsSuperuser: true}

	require.Equal(t, "alice@example.com", User(user, self, ModeDetail).Email, "subject sees their own email")
	require.Equal(t, "alice@example.com", User(user, admin, ModeDetail).Email, "admin always sees the email")
	require.Empty(t, User(user, other, ModeDetail).Email, "other users must not see the email")
	require.Empty(t, User(user, nil, ModeDetail).Email, "anonymous viewers must not see the email")

	user.CanBeContacted = true
	require.Equal(t, "alice@example.com", User(user, other, ModeDetail).Email, "contactable users show their email")
}

func TestUserNeverRendersPasswordMaterial(t *testing.T) {
	payload, err := json.Marshal(User(sampleUser(), nil, ModeDetail))
	require.NoError(t, err)
	require.NotContains(t, string(payload), "password")
	require.NotContains(t, string(payload), "secret")
}

func TestUserModes(t *testing.T) {
	user := sampleUser()

	require.Empty(t, User(user, nil, ModeList).CreatedTime)
	require.Equal(t, "2026-01-02 15:04:05", User(user, nil, ModeDetail).CreatedTime)
}

func TestAdminUserIncludesFlags(t *testing.T) {
	user := sampleUser()
	user.IsActive = true
	user.IsStaff = true

	view := AdminUser(user, ModeList)
	require.NotNil(t, view.IsActive)
	require.True(t, *view.IsActive)
	require.NotNil(t, view.IsStaff)
	require.True(t, *view.IsStaff)
	require.NotNil(t, view.IsSuperuser)
	require.False(t, *view.IsSuperuser)
	require.Equal(t, "alice@example.com", view.Email)
}

func TestProjectRendersUsernamesOnly(t *testing.T) {
	project := models.Project{
		Model:    gorm.Model{ID: 4, CreatedAt: time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)},
		Name:     "Website",
		Category: "Back-end",
		IsActive: true,
		Author:   models.User{Username: "alice", Email: "alice@example.com"},
		Contributors: []models.Contributor{
			{User: models.User{Username: "alice"}},
			{User: models.User{Username: "bob"}},
		},
	}

	view := Project(project, ModeDetail)
	require.Equal(t, "alice", view.Author)
	require.Equal(t, []string{"alice", "bob"}, view.Contributors)
	require.Equal(t, "2026-02-01 08:00:00", view.CreatedTime)

	payload, err := json.Marshal(view)
	require.NoError(t, err)
	require.NotContains(t, string(payload), "alice@example.com", "user references are usernames only")
}

func TestIssueAssignment(t *testing.T) {
	issue := models.Issue{
		Model:    gorm.Model{ID: 9},
		Project:  models.Project{Name: "Website"},
		Author:   models.User{Username: "alice"},
		Name:     "Crash on login",
		Status:   "To Do",
		Priority: "High",
		Category: "Bug",
	}

	require.Empty(t, Issue(issue, ModeList).AssignedTo)

	issue.AssignedTo = &models.User{Username: "bob"}
	require.Equal(t, "bob", Issue(issue, ModeList).AssignedTo)
}

func TestCommentView(t *testing.T) {
	uuid := uint(12)

	comment := models.Comment{
		Model:       gorm.Model{ID: 12, CreatedAt: time.Date(2026, time.March, 3, 10, 30, 0, 0, time.UTC)},
		IssueID:     9,
		Author:      models.User{Username: "bob"},
		Description: "On my machine it works",
		IssueURL:    "http://127.0.0.1:3000/api/issue/?issue_id=9",
		UUID:        &uuid,
	}

	view := Comment(comment, ModeDetail)
	require.Equal(t, uint(9), view.Issue)
	require.Equal(t, "bob", view.Author)
	require.Equal(t, &uuid, view.UUID)
	require.Equal(t, "2026-03-03 10:30:00", view.CreatedTime)
}

func TestRenderingIsIdempotent(t *testing.T) {
	user := sampleUser()
	viewer := &types.Principal{ID: 2}

	first, err := json.Marshal(User(user, viewer, ModeDetail))
	require.NoError(t, err)

	second, err := json.Marshal(User(user, viewer, ModeDetail))
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}
