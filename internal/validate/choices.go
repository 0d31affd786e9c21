package validate

import (
	"fmt"

	"github.com/taskforge-dev/taskforge/internal/apperrors"
)

// Choice rejects a value outside the allowed list for an enum column.
func Choice(value string, allowed []string) error {
	for _, choice := range allowed {
		if value == choice {
			return nil
		}
	}

	return apperrors.Validation(fmt.Sprintf("« %s » n'est pas un choix valide.", value))
}
