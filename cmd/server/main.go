package main

import (
	"os"

	"presskit/backend/internal/auth"
	"presskit/backend/internal/config"
	"presskit/backend/internal/database"
	"presskit/backend/internal/handler"
	"presskit/backend/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	// Swagger imports
	_ "presskit/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	config.LoadConfig()
}

// @title           Presskit CMS API
// @version         1.0
// @description     This is the API for the Presskit content management system.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Background tasks (scheduled publishing)
	runner := scheduler.Start()
	defer runner.Stop()

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/login", handler.Login)
			authRoutes.POST("/logout", handler.Logout)
			authRoutes.GET("/me", auth.AuthMiddleware(), handler.GetMe)
		}

		// Public site routes
		apiV1.GET("/posts", handler.ListPublishedPosts)
		apiV1.GET("/content/:slug", handler.GetContentBySlug)
		apiV1.GET("/categories", handler.ListCategories)
		apiV1.GET("/categories/:id", handler.GetCategory)
		apiV1.GET("/tags", handler.ListTags)
		apiV1.GET("/tags/:id", handler.GetTag)

		// Comments (visitors may comment; logged-in users are auto-approved)
		commentRoutes := apiV1.Group("/posts/:id/comments")
		commentRoutes.Use(auth.OptionalAuthMiddleware())
		{
			commentRoutes.GET("", handler.ListPostComments)
			commentRoutes.POST("", handler.CreateComment)
			commentRoutes.GET("/stream", handler.StreamComments)
		}

		// Editorial routes (any authenticated CMS user)
		editorRoutes := apiV1.Group("/admin")
		editorRoutes.Use(auth.AuthMiddleware())
		{
			editorRoutes.POST("/slugs/check", handler.CheckSlug)

			posts := editorRoutes.Group("/posts")
			{
				posts.GET("", handler.ListPosts)
				posts.POST("", handler.CreatePost)
				posts.GET("/:id", handler.GetPost)
				posts.PUT("/:id", handler.UpdatePost)
				posts.DELETE("/:id", handler.DeletePost)
			}

			pages := editorRoutes.Group("/pages")
			{
				pages.GET("", handler.ListPages)
				pages.POST("", handler.CreatePage)
				pages.GET("/:id", handler.GetPage)
				pages.PUT("/:id", handler.UpdatePage)
				pages.DELETE("/:id", handler.DeletePage)
			}

			categories := editorRoutes.Group("/categories")
			{
				categories.POST("", handler.CreateCategory)
				categories.PUT("/:id", handler.UpdateCategory)
				categories.DELETE("/:id", handler.DeleteCategory)
			}

			tags := editorRoutes.Group("/tags")
			{
				tags.POST("", handler.CreateTag)
				tags.PUT("/:id", handler.UpdateTag)
				tags.DELETE("/:id", handler.DeleteTag)
			}

			media := editorRoutes.Group("/media")
			{
				media.GET("", handler.ListMedia)
				media.POST("/upload", handler.UploadMedia)
				media.PUT("/:id", handler.UpdateMedia)
				media.DELETE("/:id", handler.DeleteMedia)
			}

			comments := editorRoutes.Group("/comments")
			{
				comments.GET("", handler.ListComments)
				comments.PUT("/:id", handler.ModerateComment)
				comments.DELETE("/:id", handler.DeleteComment)
			}
		}

		// Admin-only routes (users and settings)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			users := adminRoutes.Group("/users")
			{
				users.GET("", handler.ListUsers)
				users.POST("", handler.CreateUser)
				users.PUT("/:id", handler.UpdateUser)
				users.DELETE("/:id", handler.DeleteUser)
			}

			settings := adminRoutes.Group("/settings")
			{
				settings.GET("", handler.GetSettings)
				settings.PUT("", handler.UpdateSettings)
			}
		}
	}

	log.Info().Str("addr", config.AppConfig.ListenAddr).Msg("Server is running")
	log.Info().Msg("Swagger UI is available at /swagger/index.html")
	if err := router.Run(config.AppConfig.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
