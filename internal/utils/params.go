package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses the ":id" path parameter.
func GetIDParam(ctx *gin.Context) (uint, error) {
	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid ID")
	}

	return uint(id), nil
}

// GetQueryID parses an optional numeric query parameter, 0 meaning absent.
// Absence falls back to the unfiltered scope; a malformed value is an error.
func GetQueryID(ctx *gin.Context, name string) (uint, error) {
	value := ctx.Query(name)

	if value == "" {
		return 0, nil
	}

	id, err := strconv.ParseUint(value, 10, 32)

	if err != nil {
		return 0, fmt.Errorf("Invalid %s", name)
	}

	return uint(id), nil
}
