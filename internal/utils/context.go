package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (types.Principal, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return types.Principal{}, fmt.Errorf("User not authenticated")
	}

	principal, ok := value.(types.Principal)

	if !ok {
		return types.Principal{}, fmt.Errorf("Invalid user type in context")
	}

	return principal, nil
}

// GetOptionalUser returns nil for anonymous callers.
func GetOptionalUser(ctx *gin.Context) *types.Principal {
	principal, err := GetCurrentUser(ctx)

	if err != nil {
		return nil
	}

	return &principal
}
