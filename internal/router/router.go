package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/internal/handlers"
	"github.com/taskforge-dev/taskforge/internal/middleware"
	"github.com/taskforge-dev/taskforge/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/token", handlers.ObtainToken)
		api.POST("/token/refresh", handlers.RefreshToken)
		api.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		api.PUT("/password", middleware.AuthMiddleware(), handlers.ChangePassword)

		// Signup is public; reads resolve the principal when a token is
		// present, writes require one.
		users := api.Group("/user")
		{
			users.POST("", handlers.CreateUser)
			users.GET("", middleware.OptionalAuthMiddleware(), handlers.ListUsers)
			users.GET("/:id", middleware.OptionalAuthMiddleware(), handlers.GetUser)
			users.PUT("/:id", middleware.AuthMiddleware(), handlers.UpdateUser)
			users.DELETE("/:id", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		projects := api.Group("/project", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:id", handlers.GetProject)
			projects.PUT("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)
		}

		contributors := api.Group("/contributor", middleware.AuthMiddleware())
		{
			contributors.POST("", handlers.CreateContributor)
			contributors.GET("", handlers.ListContributors)
			contributors.GET("/:id", handlers.GetContributor)
			contributors.DELETE("/:id", handlers.DeleteContributor)
		}

		issues := api.Group("/issue", middleware.AuthMiddleware())
		{
			issues.POST("", handlers.CreateIssue)
			issues.GET("", handlers.ListIssues)
			issues.GET("/:id", handlers.GetIssue)
			issues.PUT("/:id", handlers.UpdateIssue)
			issues.DELETE("/:id", handlers.DeleteIssue)
		}

		comments := api.Group("/comment", middleware.AuthMiddleware())
		{
			comments.POST("", handlers.CreateComment)
			comments.GET("", handlers.ListComments)
			comments.GET("/:id", handlers.GetComment)
			comments.PUT("/:id", handlers.UpdateComment)
			comments.DELETE("/:id", handlers.DeleteComment)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.GET("/user", handlers.AdminListUsers)
			admin.POST("/user", handlers.AdminCreateUser)
			admin.GET("/user/:id", handlers.AdminGetUser)
			admin.PUT("/user/:id", handlers.AdminUpdateUser)
			admin.DELETE("/user/:id", handlers.AdminDeleteUser)

			admin.GET("/project", handlers.AdminListProjects)
			admin.POST("/project", handlers.AdminCreateProject)
			admin.GET("/project/:id", handlers.AdminGetProject)
			admin.PUT("/project/:id", handlers.AdminUpdateProject)
			admin.DELETE("/project/:id", handlers.AdminDeleteProject)

			admin.GET("/contributor", handlers.AdminListContributors)
			admin.POST("/contributor", handlers.AdminCreateContributor)
			admin.GET("/contributor/:id", handlers.AdminGetContributor)
			admin.DELETE("/contributor/:id", handlers.AdminDeleteContributor)

			admin.GET("/issue", handlers.AdminListIssues)
			admin.POST("/issue", handlers.AdminCreateIssue)
			admin.GET("/issue/:id", handlers.AdminGetIssue)
			admin.PUT("/issue/:id", handlers.AdminUpdateIssue)
			admin.DELETE("/issue/:id", handlers.AdminDeleteIssue)

			admin.GET("/comment", handlers.AdminListComments)
			admin.POST("/comment", handlers.AdminCreateComment)
			admin.GET("/comment/:id", handlers.AdminGetComment)
			admin.PUT("/comment/:id", handlers.AdminUpdateComment)
			admin.DELETE("/comment/:id", handlers.AdminDeleteComment)
		}
	}

	return r
}
