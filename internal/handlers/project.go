package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
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

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

func loadProjectView(query *gorm.DB, projectID uint) (models.Project, error) {
	var project models.Project

	err := query.
		Preload("Author").
		Preload("Contributors.User").
		First(&project, projectID).Error

	return project, err
}

// CreateProject creates the project and its author's contributor row in one
// transaction: no orphan projects, no author without a contribution.
func CreateProject(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := validate.Choice(body.Category, types.ProjectCategories); err != nil {
		respondError(ctx, err)
		return
	}

	project := models.Project{
		AuthorID:    principal.ID,
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
			UserID:    principal.ID,
			ProjectID: project.ID,
		}

		return tx.Create(&contributor).Error
	})

	if err != nil {
		// A concurrent creation can slip past the pre-check; the unique index
		// reports it as a duplicated key.
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

func ListProjects(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	err = scope.Projects(db.DB, principal, ctx.Query("category"), ctx.Query("name")).
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

func GetProject(ctx *gin.Context) {
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

	project, err := loadProjectView(scope.Projects(db.DB, principal, "", ""), id)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Project(project, render.ModeDetail))
}

func UpdateProject(ctx *gin.Context) {
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

	var project models.Project

	if err := scope.Projects(db.DB, principal, "", "").First(&project, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteProject(principal, project) {
		respondForbidden(ctx)
		return
	}

	var body UpdateProjectRequest

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

func DeleteProject(ctx *gin.Context) {
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

	var project models.Project

	if err := scope.Projects(db.DB, principal, "", "").First(&project, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteProject(principal, project) {
		respondForbidden(ctx)
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
