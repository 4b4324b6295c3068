package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jiripapousek/classwall/internal/app/controllers"
	"github.com/jiripapousek/classwall/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	classController *controllers.ContainerController,
	courseController *controllers.ContainerController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/token", authController.Login)
	v1.POST("/register", authController.Register)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/user/info", userController.GetUserInfo)

		// Listing classes and courses is open to any authenticated user
		authenticated.GET("/classes", classController.List)
		authenticated.GET("/courses", courseController.List)

		// Creating containers and managing membership is teacher-only
		teacherOnly := authenticated.Group("")
		teacherOnly.Use(authMiddleware.TeacherRequired())
		{
			teacherOnly.POST("/classes", classController.Create)
			teacherOnly.POST("/courses", courseController.Create)
			teacherOnly.POST("/class/:id/members", classController.AddMember)
			teacherOnly.POST("/course/:id/members", courseController.AddMember)
		}

		// Wall routes; access is enforced per-container in the services
		authenticated.GET("/wall", postController.GetAggregateWall)
		authenticated.GET("/class/:id/wall", classController.GetWall)
		authenticated.GET("/course/:id/wall", courseController.GetWall)
		authenticated.POST("/class/:id/post", classController.CreatePost)
		authenticated.POST("/course/:id/post", courseController.CreatePost)

		// Post routes
		posts := authenticated.Group("/post")
		{
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/comment", postController.CreateComment)
			posts.GET("/:id/comments", postController.GetComments)
			posts.POST("/:id/like", postController.LikePost)
			posts.DELETE("/:id/like", postController.UnlikePost)
		}

		// Comment routes
		comments := authenticated.Group("/comment")
		{
			comments.DELETE("/:id", commentController.DeleteComment)
			comments.POST("/:id/like", commentController.LikeComment)
			comments.DELETE("/:id/like", commentController.UnlikeComment)
		}
	}
}
