package scope

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
	"gorm.io/gorm"
)

// fixture is the shared scenario: alice authors "Website" (bob contributes),
// bob authors "Mobile", alice authors the archived "Legacy". carol contributed
// to "Website" once but her row is soft deleted.
type fixture struct {
	db *gorm.DB

	alice, bob, carol, dora models.User
	website, mobile, legacy models.Project
	websiteIssue            models.Issue
	mobileIssue             models.Issue
	websiteComment          models.Comment
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Issue{},
		&models.Comment{},
	))

	return db
}

func seed(t *testing.T) fixture {
	t.Helper()

	f := fixture{db: openTestDB(t)}

	f.alice = models.User{Username: "alice", Email: "alice@example.com", CanDataBeShared: true, IsActive: true, PasswordHash: "x"}
	f.bob = models.User{Username: "bob", Email: "bob@example.com", CanDataBeShared: true, IsActive: true, PasswordHash: "x"}
	f.carol = models.User{Username: "carol", Email: "carol@example.com", CanDataBeShared: false, IsActive: true, PasswordHash: "x"}
	f.dora = models.User{Username: "dora", Email: "dora@example.com", CanDataBeShared: true, IsActive: false, PasswordHash: "x"}

	for _, user := range []*models.User{&f.alice, &f.bob, &f.carol, &f.dora} {
		require.NoError(t, f.db.Create(user).Error)
	}

	f.website = models.Project{AuthorID: f.alice.ID, Name: "Website", SlugName: "website", Category: "Back-end", IsActive: true}
	f.mobile = models.Project{AuthorID: f.bob.ID, Name: "Mobile", SlugName: "mobile", Category: "Android", IsActive: true}
	f.legacy = models.Project{AuthorID: f.alice.ID, Name: "Legacy", SlugName: "legacy", Category: "Back-end", IsActive: false}

	for _, project := range []*models.Project{&f.website, &f.mobile, &f.legacy} {
		require.NoError(t, f.db.Create(project).Error)
	}

	contributors := []models.Contributor{
		{UserID: f.alice.ID, ProjectID: f.website.ID},
		{UserID: f.bob.ID, ProjectID: f.website.ID},
		{UserID: f.bob.ID, ProjectID: f.mobile.ID},
		{UserID: f.alice.ID, ProjectID: f.legacy.ID},
	}

	for i := range contributors {
		require.NoError(t, f.db.Create(&contributors[i]).Error)
	}

	// carol used to contribute to Website.
	removed := models.Contributor{UserID: f.carol.ID, ProjectID: f.website.ID}
	require.NoError(t, f.db.Create(&removed).Error)
	require.NoError(t, f.db.Delete(&removed).Error)

	f.websiteIssue = models.Issue{ProjectID: f.website.ID, AuthorID: f.alice.ID, Name: "Crash on login", Status: "To Do", Priority: "High", Category: "Bug"}
	f.mobileIssue = models.Issue{ProjectID: f.mobile.ID, AuthorID: f.bob.ID, Name: "Dark mode", Status: "To Do", Priority: "Low", Category: "Feature"}
	require.NoError(t, f.db.Create(&f.websiteIssue).Error)
	require.NoError(t, f.db.Create(&f.mobileIssue).Error)

	f.websiteComment = models.Comment{IssueID: f.websiteIssue.ID, AuthorID: f.bob.ID, Description: "Reproduced on staging"}
	require.NoError(t, f.db.Create(&f.websiteComment).Error)

	return f
}

func (f fixture) principal(user models.User) types.Principal {
	return types.Principal{ID: user.ID, Username: user.Username, IsSuperuser: user.IsSuperuser}
}

func usernames(t *testing.T, query *gorm.DB) []string {
	t.Helper()

	var names []string
	require.NoError(t, query.Order("username").Pluck("username", &names).Error)

	return names
}

func projectNames(t *testing.T, query *gorm.DB) []string {
	t.Helper()

	var names []string
	require.NoError(t, query.Order("projects.name").Pluck("projects.name", &names).Error)

	return names
}

func TestUsersScope(t *testing.T) {
	f := seed(t)

	t.Run("anonymous", func(t *testing.T) {
		require.Equal(t, []string{"alice", "bob"}, usernames(t, Users(f.db, nil, "")))
	})

	t.Run("principal always sees their own row", func(t *testing.T) {
		carol := f.principal(f.carol)
		require.Equal(t, []string{"alice", "bob", "carol"}, usernames(t, Users(f.db, &carol, "")))
	})

	t.Run("username filter", func(t *testing.T) {
		alice := f.principal(f.alice)
		require.Equal(t, []string{"bob"}, usernames(t, Users(f.db, &alice, "bob")))
	})

	t.Run("unshared rows stay hidden even when filtered for", func(t *testing.T) {
		alice := f.principal(f.alice)
		require.Empty(t, usernames(t, Users(f.db, &alice, "carol")))
	})
}

func TestProjectsScope(t *testing.T) {
	f := seed(t)

	t.Run("author sees only active projects", func(t *testing.T) {
		require.Equal(t, []string{"Website"}, projectNames(t, Projects(f.db, f.principal(f.alice), "", "")))
	})

	t.Run("contributor sees contributed projects", func(t *testing.T) {
		require.Equal(t, []string{"Mobile", "Website"}, projectNames(t, Projects(f.db, f.principal(f.bob), "", "")))
	})

	t.Run("removed contributor sees nothing", func(t *testing.T) {
		require.Empty(t, projectNames(t, Projects(f.db, f.principal(f.carol), "", "")))
	})

	t.Run("category filter", func(t *testing.T) {
		require.Equal(t, []string{"Mobile"}, projectNames(t, Projects(f.db, f.principal(f.bob), "Android", "")))
	})

	t.Run("name filter", func(t *testing.T) {
		require.Equal(t, []string{"Website"}, projectNames(t, Projects(f.db, f.principal(f.bob), "", "Website")))
	})
}

func TestContributorsScope(t *testing.T) {
	f := seed(t)

	t.Run("author enumerates their project", func(t *testing.T) {
		var count int64
		require.NoError(t, Contributors(f.db, f.principal(f.alice), f.website.ID).Count(&count).Error)
		require.EqualValues(t, 2, count)
	})

	t.Run("contributor without authorship sees nothing", func(t *testing.T) {
		var count int64
		require.NoError(t, Contributors(f.db, f.principal(f.bob), f.website.ID).Count(&count).Error)
		require.Zero(t, count)
	})

	t.Run("archived projects are excluded", func(t *testing.T) {
		var count int64
		require.NoError(t, Contributors(f.db, f.principal(f.alice), f.legacy.ID).Count(&count).Error)
		require.Zero(t, count)
	})
}

func TestIssuesScope(t *testing.T) {
	f := seed(t)

	t.Run("follows project contribution", func(t *testing.T) {
		var names []string
		require.NoError(t, Issues(f.db, f.principal(f.alice), 0, "").Order("issues.name").Pluck("issues.name", &names).Error)
		require.Equal(t, []string{"Crash on login"}, names)
	})

	t.Run("id filter outside the scope is empty not an error", func(t *testing.T) {
		var count int64
		require.NoError(t, Issues(f.db, f.principal(f.alice), f.mobileIssue.ID, "").Count(&count).Error)
		require.Zero(t, count)
	})

	t.Run("project name filter", func(t *testing.T) {
		var count int64
		require.NoError(t, Issues(f.db, f.principal(f.bob), 0, "Mobile").Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
}

func TestCommentsScope(t *testing.T) {
	f := seed(t)

	t.Run("visible through contribution", func(t *testing.T) {
		var count int64
		require.NoError(t, Comments(f.db, f.principal(f.alice), 0).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})

	t.Run("hidden outside contributed projects", func(t *testing.T) {
		var count int64
		require.NoError(t, Comments(f.db, f.principal(f.carol), f.websiteComment.ID).Count(&count).Error)
		require.Zero(t, count)
	})
}

func TestAdminScopesBypassVisibility(t *testing.T) {
	f := seed(t)

	require.Equal(t, []string{"alice", "bob", "carol", "dora"}, usernames(t, AdminUsers(f.db, "")))
	require.Equal(t, []string{"Legacy", "Mobile", "Website"}, projectNames(t, AdminProjects(f.db, "", "")))

	var count int64
	require.NoError(t, AdminContributors(f.db, 0).Count(&count).Error)
	require.EqualValues(t, 4, count, "soft deleted rows stay hidden even from admins")

	require.NoError(t, AdminIssues(f.db, 0, "Mobile").Count(&count).Error)
	require.EqualValues(t, 1, count)

	require.NoError(t, AdminComments(f.db, f.websiteComment.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestMemberHelpers(t *testing.T) {
	f := seed(t)

	ids, err := ContributorIDs(f.db, f.website.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{f.alice.ID, f.bob.ID}, ids)

	names, err := ContributorUsernames(f.db, f.website.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, names, "usernames come back sorted")

	isContributor, err := IsContributor(f.db, f.website.ID, f.bob.ID)
	require.NoError(t, err)
	require.True(t, isContributor)

	isContributor, err = IsContributor(f.db, f.website.ID, f.carol.ID)
	require.NoError(t, err)
	require.False(t, isContributor, "removed contributors no longer count")
}
