package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Choice lists for the enum columns. Validation rejects anything else.
var (
	ProjectCategories = []string{"Back-end", "Front-end", "iOS", "Android"}
	IssueStatuses     = []string{"To Do", "In Progress", "Finished"}
	IssuePriorities   = []string{"Low", "Medium", "High"}
	IssueCategories   = []string{"Bug", "Feature", "Task"}
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
