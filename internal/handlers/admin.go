package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/render"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"github.com/taskforge-dev/taskforge/internal/types"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"github.com/taskforge-dev/taskforge/internal/validate"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin endpoints bypass visibility scoping and see unredacted rows. The
// admin middleware has already required a superuser principal.

type AdminCreateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Birthdate       string `json:"birthdate"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
	Image           string `json:"image"`
	IsActive        *bool  `json:"is_active"`
	IsStaff         bool   `json:"is_staff"`
	IsSuperuser     bool   `json:"is_superuser"`
}

type AdminUpdateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Birthdate       string `json:"birthdate"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
	Image           string `json:"image"`
	IsActive        *bool  `json:"is_active"`
	IsStaff         bool   `json:"is_staff"`
	IsSuperuser     bool   `json:"is_superuser"`
}

// Accounts provisioned by an admin start with a known placeholder password
// the user is expected to change.
const adminDefaultPassword = "00000000pw"

func AdminListUsers(ctx *gin.Context) {
	var users []models.User

	if err := scope.AdminUsers(db.DB, ctx.Query("username")).Order("users.id").Find(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]render.UserView, 0, len(users))

	for _, user := range users {
		response = append(response, render.AdminUser(user, render.ModeList))
	}

	ctx.JSON(http.StatusOK, response)
}

func AdminGetUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.AdminUser(user, render.ModeDetail))
}

func AdminCreateUser(ctx *gin.Context) {
	var body AdminCreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	birthdate, err := parseBirthdate(body.Birthdate)

	if err != nil {
		respondError(ctx, err)
		return
	}

	canBeContacted, canDataBeShared, err := validate.Profile(birthdate, body.CanBeContacted, body.CanDataBeShared)

	if err != nil {
		respondError(ctx, err)
		return
	}

	password := body.Password

	if password == "" {
		password = adminDefaultPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	isActive := true

	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	user := models.User{
		Username:        body.Username,
		Email:           body.Email,
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Birthdate:       toDate(birthdate),
		CanBeContacted:  canBeContacted,
		CanDataBeShared: canDataBeShared,
		Image:           body.Image,
		IsActive:        isActive,
		IsStaff:         body.IsStaff,
		IsSuperuser:     body.IsSuperuser,
		PasswordHash:    string(passwordHash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un utilisateur avec ce nom existe déjà."})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, render.AdminUser(user, render.ModeDetail))
}

func AdminUpdateUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	var body AdminUpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	birthdate, err := parseBirthdate(body.Birthdate)

	if err != nil {
		respondError(ctx, err)
		return
	}

	canBeContacted, canDataBeShared, err := validate.Profile(birthdate, body.CanBeContacted, body.CanDataBeShared)

	if err != nil {
		respondError(ctx, err)
		return
	}

	user.Username = body.Username
	user.Email = body.Email
	user.FirstName = body.FirstName
	user.LastName = body.LastName
	user.Birthdate = toDate(birthdate)
	user.CanBeContacted = canBeContacted
	user.CanDataBeShared = canDataBeShared
	user.Image = body.Image
	user.IsStaff = body.IsStaff
	user.IsSuperuser = body.IsSuperuser

	if body.IsActive != nil {
		user.IsActive = *body.IsActive
	}

	if err := db.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un utilisateur avec ce nom existe déjà."})
			return
		}
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, render.AdminUser(user, render.ModeDetail))
}

func AdminDeleteUser(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return db.DeleteUserCascade(tx, user.ID)
	})

	if err != nil {
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AdminListProjects(ctx *gin.Context) {
	var projects []models.Project

	err := scope.AdminProjects(db.DB, ctx.Query("category"), ctx.Query("name")).
		Preload("Author").
		Preload("Contributors.User").
		Order("projects.id").
		Find(&projects).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]render.ProjectView, 0, len(projects))

	for _, project := range projects {
		response = append(response, render.Project(project, render.ModeList))
	}

	ctx.JSON(http.StatusOK, response)
}

func AdminGetProject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := loadProjectView(db.DB, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Project(project, render.ModeDetail))
}

type AdminCreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Author      string `json:"author"`
}

// AdminCreateProject creates a project on any user's behalf; the author
// defaults to the admin themself. The named author gets the contributor row.
func AdminCreateProject(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AdminCreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := validate.Choice(body.Category, types.ProjectCategories); err != nil {
		respondError(ctx, err)
		return
	}

	author, err := resolveMember(db.DB, body.Author, principal)

	if err != nil {
		respondError(ctx, err)
		return
	}

	project := models.Project{
		AuthorID:    author.ID,
		Name:        body.Name,
		SlugName:    slug.Make(body.Name),
		Description: body.Description,
		Category:    body.Category,
		IsActive:    true,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := validate.ProjectName(tx, project.SlugName, 0); err != nil {
			return err
		}

		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		contributor := models.Contributor{
			UserID:    author.ID,
			ProjectID: project.ID,
		}

		return tx.Create(&contributor).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un projet avec ce nom existe déjà."})
			return
		}
		respondError(ctx, err)
		return
	}

	project, err = loadProjectView(db.DB, project.ID)

	if err != nil {
		log.Printf("Failed to reload project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, render.Project(project, render.ModeDetail))
}

type AdminUpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

// AdminUpdateProject also toggles is_active: deactivation is the admin way of
// retiring a project without deleting it.
func AdminUpdateProject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	var body AdminUpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := validate.Choice(body.Category, types.ProjectCategories); err != nil {
		respondError(ctx, err)
		return
	}

	slugName := slug.Make(body.Name)

	if err := validate.ProjectName(db.DB, slugName, project.ID); err != nil {
		respondError(ctx, err)
		return
	}

	project.Name = body.Name
	project.SlugName = slugName
	project.Description = body.Description
	project.Category = body.Category

	if body.IsActive != nil {
		project.IsActive = *body.IsActive
	}

	if err := db.DB.Save(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un projet avec ce nom existe déjà."})
			return
		}
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	project, err = loadProjectView(db.DB, project.ID)

	if err != nil {
		log.Printf("Failed to reload project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, render.Project(project, render.ModeDetail))
}

func AdminDeleteProject(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return db.DeleteProjectCascade(tx, project.ID)
	})

	if err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AdminCreateContributor skips the self-addition restriction but keeps the
// uniqueness rule.
func AdminCreateContributor(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateContributorRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	candidate, err := findUserByUsername(db.DB, body.Contributor)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := validate.NewContributor(db.DB, principal, project, candidate, true); err != nil {
		respondError(ctx, err)
		return
	}

	contributor := models.Contributor{
		UserID:    candidate.ID,
		ProjectID: project.ID,
	}

	if err := db.DB.Create(&contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cet utilisateur est déjà contributeur du projet."})
			return
		}
		log.Printf("Failed to create contributor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	contributor.User = candidate
	contributor.Project = project

	ctx.JSON(http.StatusCreated, render.Contributor(contributor, render.ModeDetail))
}

func AdminListContributors(ctx *gin.Context) {
	projectID, err := utils.GetQueryID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contributors []models.Contributor

	err = scope.AdminContributors(db.DB, projectID).
		Preload("User").
		Preload("Project").
		Order("contributors.id").
		Find(&contributors).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contributors"})
		return
	}

	response := make([]render.ContributorView, 0, len(contributors))

	for _, contributor := range contributors {
		response = append(response, render.Contributor(contributor, render.ModeList))
	}

	ctx.JSON(http.StatusOK, response)
}

func AdminGetContributor(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contributor models.Contributor

	err = db.DB.
		Preload("User").
		Preload("Project").
		First(&contributor, id).Error

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Contributor(contributor, render.ModeDetail))
}

func AdminDeleteContributor(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contributor models.Contributor

	if err := db.DB.Preload("Project").First(&contributor, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := validate.ContributorRemoval(contributor); err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.Delete(&contributor).Error; err != nil {
		log.Printf("Failed to delete contributor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AdminListIssues(ctx *gin.Context) {
	issueID, err := utils.GetQueryID(ctx, "issue_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issues []models.Issue

	err = scope.AdminIssues(db.DB, issueID, ctx.Query("project_name")).
		Preload("Project").
		Preload("Author").
		Preload("AssignedTo").
		Order("issues.id").
		Find(&issues).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	response := make([]render.IssueView, 0, len(issues))

	for _, issue := range issues {
		response = append(response, render.Issue(issue, render.ModeList))
	}

	ctx.JSON(http.StatusOK, response)
}

func AdminGetIssue(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := loadIssueView(db.DB, id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Issue(issue, render.ModeDetail))
}

// AdminCreateIssue works on any project; author and assignee must still be
// contributors of it, and the author is not defaulted away from the admin.
func AdminCreateIssue(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateIssueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := validateIssueChoices(body.Status, body.Priority, body.Category); err != nil {
		respondError(ctx, err)
		return
	}

	author, err := resolveMember(db.DB, body.Author, principal)

	if err != nil {
		respondError(ctx, err)
		return
	}

	var assignedTo *models.User

	if body.AssignedTo != "" {
		assignee, err := findUserByUsername(db.DB, body.AssignedTo)

		if err != nil {
			respondError(ctx, err)
			return
		}

		assignedTo = &assignee
	}

	if err := validate.IssueMembers(db.DB, project, author, assignedTo); err != nil {
		respondError(ctx, err)
		return
	}

	status := body.Status

	if status == "" {
		status = "To Do"
	}

	issue := models.Issue{
		ProjectID:   project.ID,
		AuthorID:    author.ID,
		Name:        body.Name,
		Description: body.Description,
		Status:      status,
		Priority:    body.Priority,
		Category:    body.Category,
	}

	if assignedTo != nil {
		issue.AssignedToID = &assignedTo.ID
	}

	if err := db.DB.Create(&issue).Error; err != nil {
		log.Printf("Failed to create issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	issue, err = loadIssueView(db.DB, issue.ID)

	if err != nil {
		log.Printf("Failed to reload issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, render.Issue(issue, render.ModeDetail))
}

func AdminUpdateIssue(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issue models.Issue

	if err := db.DB.First(&issue, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	var body UpdateIssueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := validateIssueChoices(body.Status, body.Priority, body.Category); err != nil {
		respondError(ctx, err)
		return
	}

	var project models.Project

	if err := db.DB.First(&project, issue.ProjectID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	var author models.User

	if err := db.DB.First(&author, issue.AuthorID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	var assignedTo *models.User

	if body.AssignedTo != "" {
		assignee, err := findUserByUsername(db.DB, body.AssignedTo)

		if err != nil {
			respondError(ctx, err)
			return
		}

		assignedTo = &assignee
	}

	if err := validate.IssueMembers(db.DB, project, author, assignedTo); err != nil {
		respondError(ctx, err)
		return
	}

	issue.Name = body.Name
	issue.Description = body.Description
	issue.Status = body.Status
	issue.Priority = body.Priority
	issue.Category = body.Category

	if assignedTo != nil {
		issue.AssignedToID = &assignedTo.ID
	} else {
		issue.AssignedToID = nil
	}

	if err := db.DB.Save(&issue).Error; err != nil {
		log.Printf("Failed to update issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	issue, err = loadIssueView(db.DB, issue.ID)

	if err != nil {
		log.Printf("Failed to reload issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, render.Issue(issue, render.ModeDetail))
}

func AdminDeleteIssue(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issue models.Issue

	if err := db.DB.First(&issue, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return db.DeleteIssueCascade(tx, issue.ID)
	})

	if err != nil {
		log.Printf("Failed to delete issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AdminListComments(ctx *gin.Context) {
	commentID, err := utils.GetQueryID(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comments []models.Comment

	err = scope.AdminComments(db.DB, commentID).
		Preload("Author").
		Order("comments.id").
		Find(&comments).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]render.CommentView, 0, len(comments))

	for _, comment := range comments {
		response = append(response, render.Comment(comment, render.ModeList))
	}

	ctx.JSON(http.StatusOK, response)
}

func AdminGetComment(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.Preload("Author").First(&comment, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Comment(comment, render.ModeDetail))
}

// AdminCreateComment bypasses the visibility scope but keeps the membership
// rule: the named author must contribute to the issue's project.
func AdminCreateComment(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var issue models.Issue

	if err := db.DB.Preload("Project").First(&issue, body.IssueID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	author, err := resolveMember(db.DB, body.Author, principal)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := validate.CommentAuthor(db.DB, issue, author); err != nil {
		respondError(ctx, err)
		return
	}

	comment := models.Comment{
		IssueID:     issue.ID,
		AuthorID:    author.ID,
		Description: body.Description,
		IssueURL:    issueURL(issue.ID),
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		return tx.Model(&comment).Update("uuid", comment.ID).Error
	})

	if err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	comment.Author = author

	ctx.JSON(http.StatusCreated, render.Comment(comment, render.ModeDetail))
}

func AdminUpdateComment(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	var body UpdateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment.Description = body.Description

	if err := db.DB.Save(&comment).Error; err != nil {
		log.Printf("Failed to update comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&comment.Author, comment.AuthorID).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Comment(comment, render.ModeDetail))
}

func AdminDeleteComment(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		log.Printf("Failed to delete comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
