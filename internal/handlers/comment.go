package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"

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

type CreateCommentRequest struct {
	IssueID     uint   `json:"issue_id" binding:"required"`
	Description string `json:"description" binding:"required"`
	Author      string `json:"author"`
}

type UpdateCommentRequest struct {
	Description string `json:"description" binding:"required"`
}

func issueURL(issueID uint) string {
	base := os.Getenv("BASE_URL")

	if base == "" {
		base = "http://127.0.0.1:3000"
	}

	return fmt.Sprintf("%s/api/issue/?issue_id=%d", base, issueID)
}

// CreateComment inserts the comment, then stamps its uuid with the row's own
// id inside the same transaction. Downstream URLs rely on uuid matching the
// primary key, so it is not a random token.
func CreateComment(ctx *gin.Context) {
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

	err = scope.Issues(db.DB, principal, 0, "").
		Preload("Project").
		First(&issue, body.IssueID).Error

	if err != nil {
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

func ListComments(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetQueryID(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comments []models.Comment

	err = scope.Comments(db.DB, principal, commentID).
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

func GetComment(ctx *gin.Context) {
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

	var comment models.Comment

	err = scope.Comments(db.DB, principal, 0).
		Preload("Author").
		First(&comment, id).Error

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.Comment(comment, render.ModeDetail))
}

func UpdateComment(ctx *gin.Context) {
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

	var comment models.Comment

	if err := scope.Comments(db.DB, principal, 0).First(&comment, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteComment(principal, comment) {
		respondForbidden(ctx)
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

func DeleteComment(ctx *gin.Context) {
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

	var comment models.Comment

	if err := scope.Comments(db.DB, principal, 0).First(&comment, id).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteComment(principal, comment) {
		respondForbidden(ctx)
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		log.Printf("Failed to delete comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
