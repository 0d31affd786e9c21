package render

import (
	"time"

	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
)

// Mode selects the representation shape. The detail shape adds timestamps.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

type UserView struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Birthdate       string `json:"birthdate,omitempty"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
	Image           string `json:"image,omitempty"`
	IsActive        *bool  `json:"is_active,omitempty"`
	IsStaff         *bool  `json:"is_staff,omitempty"`
	IsSuperuser     *bool  `json:"is_superuser,omitempty"`
	CreatedTime     string `json:"created_time,omitempty"`
}

// emailVisible: the subject and admins always see the email, everyone else
// only when the subject allows contact.
func emailVisible(user models.User, viewer *types.Principal) bool {
	if viewer != nil && (viewer.ID == user.ID || viewer.IsSuperuser) {
		return true
	}

	return user.CanBeContacted
}

func baseUserView(user models.User, mode Mode) UserView {
	view := UserView{
		ID:              user.ID,
		Username:        user.Username,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		CanBeContacted:  user.CanBeContacted,
		CanDataBeShared: user.CanDataBeShared,
		Image:           user.Image,
	}

	if user.Birthdate != nil {
		view.Birthdate = time.Time(*user.Birthdate).Format(dateLayout)
	}

	if mode == ModeDetail {
		view.CreatedTime = user.CreatedAt.Format(timeLayout)
	}

	return view
}

// User shapes a user for the given viewer. Password material never appears.
func User(user models.User, viewer *types.Principal, mode Mode) UserView {
	view := baseUserView(user, mode)

	if emailVisible(user, viewer) {
		view.Email = user.Email
	}

	return view
}

// AdminUser adds the account flags and never redacts the email.
func AdminUser(user models.User, mode Mode) UserView {
	view := baseUserView(user, mode)
	view.Email = user.Email
	view.IsActive = &user.IsActive
	view.IsStaff = &user.IsStaff
	view.IsSuperuser = &user.IsSuperuser

	return view
}

type ProjectView struct {
	ID           uint     `json:"id"`
	Author       string   `json:"author"`
	Contributors []string `json:"contributors"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	IsActive     *bool    `json:"is_active,omitempty"`
	CreatedTime  string   `json:"created_time,omitempty"`
}

// Project expects Author and Contributors.User to be preloaded. User
// references render as usernames only.
func Project(project models.Project, mode Mode) ProjectView {
	contributors := make([]string, 0, len(project.Contributors))

	for _, contributor := range project.Contributors {
		contributors = append(contributors, contributor.User.Username)
	}

	view := ProjectView{
		ID:           project.ID,
		Author:       project.Author.Username,
		Contributors: contributors,
		Name:         project.Name,
		Description:  project.Description,
		Category:     project.Category,
	}

	if mode == ModeDetail {
		view.IsActive = &project.IsActive
		view.CreatedTime = project.CreatedAt.Format(timeLayout)
	}

	return view
}

type ContributorView struct {
	ID          uint   `json:"id"`
	Project     string `json:"project"`
	Contributor string `json:"contributor"`
	CreatedTime string `json:"created_time,omitempty"`
}

// Contributor expects User and Project to be preloaded.
func Contributor(contributor models.Contributor, mode Mode) ContributorView {
	view := ContributorView{
		ID:          contributor.ID,
		Project:     contributor.Project.Name,
		Contributor: contributor.User.Username,
	}

	if mode == ModeDetail {
		view.CreatedTime = contributor.CreatedAt.Format(timeLayout)
	}

	return view
}

type IssueView struct {
	ID          uint   `json:"id"`
	Project     string `json:"project"`
	Author      string `json:"author"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	CreatedTime string `json:"created_time,omitempty"`
}

// Issue expects Project, Author and AssignedTo to be preloaded.
func Issue(issue models.Issue, mode Mode) IssueView {
	view := IssueView{
		ID:          issue.ID,
		Project:     issue.Project.Name,
		Author:      issue.Author.Username,
		Name:        issue.Name,
		Description: issue.Description,
		Status:      issue.Status,
		Priority:    issue.Priority,
		Category:    issue.Category,
	}

	if issue.AssignedTo != nil {
		view.AssignedTo = issue.AssignedTo.Username
	}

	if mode == ModeDetail {
		view.CreatedTime = issue.CreatedAt.Format(timeLayout)
	}

	return view
}

type CommentView struct {
	ID          uint   `json:"id"`
	Issue       uint   `json:"issue"`
	Author      string `json:"author"`
	Description string `json:"description"`
	IssueURL    string `json:"issue_url"`
	UUID        *uint  `json:"uuid"`
	CreatedTime string `json:"created_time,omitempty"`
}

// Comment expects Author to be preloaded.
func Comment(comment models.Comment, mode Mode) CommentView {
	view := CommentView{
		ID:          comment.ID,
		Issue:       comment.IssueID,
		Author:      comment.Author.Username,
		Description: comment.Description,
		IssueURL:    comment.IssueURL,
		UUID:        comment.UUID,
	}

	if mode == ModeDetail {
		view.CreatedTime = comment.CreatedAt.Format(timeLayout)
	}

	return view
}
