package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/guard"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/render"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"github.com/taskforge-dev/taskforge/internal/types"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"github.com/taskforge-dev/taskforge/internal/validate"
	"gorm.io/gorm"
)

type CreateIssueRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Author      string `json:"author"`
	AssignedTo  string `json:"assigned_to"`
}

type UpdateIssueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Category    string `json:"category" binding:"required"`
	AssignedTo  string `json:"assigned_to"`
}

func validateIssueChoices(status, priority, category string) error {
	if status != "" {
		if err := validate.Choice(status, types.IssueStatuses); err != nil {
			return err
		}
	}

	if err := validate.Choice(priority, types.IssuePriorities); err != nil {
		return err
	}

	return validate.Choice(category, types.IssueCategories)
}

// resolveMember resolves an optional username reference, falling back to the
// principal's own row when absent.
func resolveMember(tx *gorm.DB, username string, principal types.Principal) (models.User, error) {
	if username == "" {
		var user models.User
		err := tx.First(&user, principal.ID).Error
		return user, err
	}

	return findUserByUsername(tx, username)
}

func loadIssueView(query *gorm.DB, issueID uint) (models.Issue, error) {
	var issue models.Issue

	err := query.
		Preload("Project").
		Preload("Author").
		Preload("AssignedTo").
		First(&issue, issueID).Error

	return issue, err
}

func CreateIssue(ctx *gin.Context) {
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

	// The project must be inside the principal's visibility scope.
	var project models.Project

	if err := scope.Projects(db.DB, principal, "", "").First(&project, body.ProjectID).Error; err != nil {
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

func ListIssues(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	issueID, err := utils.GetQueryID(ctx, "issue_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issues []models.Issue

	err = scope.Issues(db.DB, principal, issueID, ctx.Query("project_name")).
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

func GetIssue(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := loadIssueView(scope.Issues(db.DB, principal, 0, ""), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Issue(issue, render.ModeDetail))
}

func UpdateIssue(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issue models.Issue

	if err := scope.Issues(db.DB, principal, 0, "").First(&issue, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteIssue(principal, issue) {
		respondForbidden(ctx)
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

func DeleteIssue(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var issue models.Issue

	if err := scope.Issues(db.DB, principal, 0, "").First(&issue, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteIssue(principal, issue) {
		respondForbidden(ctx)
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
