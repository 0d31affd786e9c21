package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/types"
)

func principalFromToken(tokenString string) (types.Principal, bool) {
	claims, err := auth.VerifyJWTOfType(tokenString, auth.TokenTypeAccess)

	if err != nil {
		return types.Principal{}, false
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return types.Principal{}, false
	}

	var user models.User

	if err := db.DB.Where("id = ?", uint(userIDFloat)).First(&user).Error; err != nil {
		return types.Principal{}, false
	}

	if !user.IsActive {
		return types.Principal{}, false
	}

	return types.Principal{
		ID:              user.ID,
		Username:        user.Username,
		IsStaff:         user.IsStaff,
		IsSuperuser:     user.IsSuperuser,
		CanBeContacted:  user.CanBeContacted,
		CanDataBeShared: user.CanDataBeShared,
	}, true
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Informations d'authentification non fournies."})
			return
		}

		principal, ok := principalFromToken(tokenString)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Le token est invalide ou expiré."})
			return
		}

		ctx.Set(types.ContextUserKey, principal)
		ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the principal when a valid token is present
// and lets anonymous requests through. The user listing is reachable both ways.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenString, ok := bearerToken(ctx); ok {
			if principal, ok := principalFromToken(tokenString); ok {
				ctx.Set(types.ContextUserKey, principal)
			}
		}

		ctx.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and requires a superuser principal.
func AdminMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		principal, ok := value.(types.Principal)

		if !exists || !ok || !principal.IsSuperuser {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Vous n'avez pas la permission d'effectuer cette action."})
			return
		}

		ctx.Next()
	}
}
