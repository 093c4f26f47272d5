package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uniforum/uniforum/internal/app/controllers"
	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/middleware"
	"github.com/uniforum/uniforum/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	forumController *controllers.ForumController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		forums := authenticated.Group("/forums")
		{
			forums.GET("", forumController.GetForums)
			forums.GET("/:id", forumController.GetForum)
			forums.GET("/:id/posts", forumController.GetPosts)
			forums.POST("/:id/posts", forumController.CreatePost)
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("/:id", forumController.GetPost)
			posts.POST("/:id/comments", forumController.CreateComment)
			posts.POST("/:id/vote", forumController.VotePost)
		}

		comments := authenticated.Group("/comments")
		{
			comments.POST("/:id/vote", forumController.VoteComment)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.PUT("/:id/read", notificationController.MarkRead)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
		}

		// Live notification pushes
		authenticated.GET("/ws/notifications", wsHandler.HandleConnection)

		// Admin-only routes
		admin := authenticated.Group("/admin")
		admin.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/users", adminController.GetUsers)
			admin.PUT("/users/:id", adminController.UpdateUser)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.PUT("/users/:id/verify", adminController.VerifyUser)
			admin.PUT("/users/:id/group", adminController.MoveStudent)
			admin.POST("/users/:id/courses/:courseId", adminController.EnrollStudent)
			admin.DELETE("/users/:id/courses/:courseId", adminController.RemoveStudentFromCourse)

			admin.GET("/professors", adminController.GetProfessors)
			admin.POST("/professors/sync", adminController.SyncProfessors)
			admin.GET("/groups", adminController.GetGroups)

			admin.GET("/courses", adminController.GetCourses)
			admin.POST("/courses", adminController.CreateCourse)

			admin.POST("/forums/initialize", adminController.InitializeForums)
			admin.POST("/forums/:id/access/:userId", adminController.GrantForumAccess)
			admin.PUT("/forums/:id/professor", adminController.AssignProfessor)
			admin.DELETE("/forums/:id/professor", adminController.RemoveProfessor)
		}
	}
}
