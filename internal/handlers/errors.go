package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/apperrors"
	"gorm.io/gorm"
)

// respondError maps domain errors to their HTTP status. Rows outside the
// caller's visibility scope answer 404 exactly like missing rows, so existence
// never leaks.
func respondError(ctx *gin.Context, err error) {
	var appErr *apperrors.Error

	if errors.As(err, &appErr) {
		ctx.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Ressource introuvable."})
		return
	}

	log.Printf("Unexpected error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func respondForbidden(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, gin.H{"error": "Vous n'avez pas la permission d'effectuer cette action."})
}

func userDoesNotExist(username string) error {
	return apperrors.Validation(fmt.Sprintf("L'objet avec username=%s n'existe pas.", username))
}
