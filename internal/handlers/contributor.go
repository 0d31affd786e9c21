package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/guard"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/render"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"github.com/taskforge-dev/taskforge/internal/validate"
	"gorm.io/gorm"
)

type CreateContributorRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	Contributor string `json:"contributor" binding:"required"`
}

func findUserByUsername(tx *gorm.DB, username string) (models.User, error) {
	var user models.User

	err := tx.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, userDoesNotExist(username)
	}

	return user, err
}

// CreateContributor adds a user to a project. The constraint is on submitted
// data, so it is validation rather than an object-level guard: only the
// project author passes, and only for users not already contributing.
func CreateContributor(ctx *gin.Context) {
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

	if err := validate.NewContributor(db.DB, principal, project, candidate, false); err != nil {
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

func ListContributors(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetQueryID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var contributors []models.Contributor

	err = scope.Contributors(db.DB, principal, projectID).
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

func GetContributor(ctx *gin.Context) {
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

	var contributor models.Contributor

	err = scope.Contributors(db.DB, principal, 0).
		Preload("User").
		Preload("Project").
		First(&contributor, id).Error

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Contributor(contributor, render.ModeDetail))
}

func DeleteContributor(ctx *gin.Context) {
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

	var contributor models.Contributor

	err = scope.Contributors(db.DB, principal, 0).
		Preload("Project").
		First(&contributor, id).Error

	if err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteContributor(principal, contributor) {
		respondForbidden(ctx)
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
