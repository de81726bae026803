package main

import (
	"log"
	"net/http"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/controllers"
	"github.com/craftconnect/artisan-market-api/middleware"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/craftconnect/artisan-market-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Artisan Market API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed media storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitMediaService(s3Service)

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter creates and configures the application router
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	auth := middleware.EnsureValidToken(cfg)

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Users
		v1.POST("/users", auth, controllers.CreateUser)
		v1.GET("/users/me", auth, controllers.GetCurrentUser)
		v1.PATCH("/users/me", auth, controllers.UpdateCurrentUser)
		v1.DELETE("/users/me", auth, controllers.DeleteCurrentUser)
		v1.GET("/users/:id", controllers.GetUser)

		// Roles
		v1.POST("/users/me/roles", auth, controllers.AssignRole)
		v1.GET("/users/:id/roles", controllers.ListUserRoles)
		v1.PATCH("/roles/:id", auth, controllers.UpdateRole)
		v1.DELETE("/roles/:id", auth, controllers.RemoveRole)

		// Artisan profiles
		v1.POST("/artisans", auth, controllers.CreateArtisanProfile)
		v1.GET("/artisans", controllers.ListArtisanProfiles)
		v1.GET("/artisans/:slug", controllers.GetArtisanProfile)
		v1.PATCH("/artisans/me", auth, controllers.UpdateCurrentArtisanProfile)
		v1.DELETE("/artisans/me", auth, controllers.DeleteCurrentArtisanProfile)

		// Portfolio works
		v1.POST("/artisans/me/works", auth, controllers.CreateWork)
		v1.GET("/artisans/:slug/works", controllers.ListArtisanWorks)
		v1.GET("/works/:slug", controllers.GetWork)
		v1.PATCH("/works/:id", auth, controllers.UpdateWork)
		v1.DELETE("/works/:id", auth, controllers.DeleteWork)
		v1.POST("/works/:id/images", auth, controllers.AddWorkImage)
		v1.DELETE("/work-images/:id", auth, controllers.DeleteWorkImage)

		// Job requests
		v1.POST("/user-feeds", auth, controllers.CreateUserFeed)
		v1.GET("/user-feeds", controllers.ListUserFeeds)
		v1.GET("/user-feeds/:slug", controllers.GetUserFeed)
		v1.PATCH("/user-feeds/:id", auth, controllers.UpdateUserFeed)
		v1.DELETE("/user-feeds/:id", auth, controllers.DeleteUserFeed)
		v1.GET("/user-feeds/:slug/proposals", auth, controllers.ListFeedProposals)

		// Artisan posts
		v1.POST("/artisan-feeds", auth, controllers.CreateArtisanFeed)
		v1.GET("/artisan-feeds", controllers.ListArtisanFeeds)
		v1.GET("/artisan-feeds/:slug", controllers.GetArtisanFeed)
		v1.PATCH("/artisan-feeds/:id", auth, controllers.UpdateArtisanFeed)
		v1.DELETE("/artisan-feeds/:id", auth, controllers.DeleteArtisanFeed)
		v1.POST("/artisan-feeds/:id/share", controllers.ShareArtisanFeed)

		// Comments
		v1.POST("/comments", auth, controllers.CreateComment)
		v1.GET("/comments", controllers.ListComments)
		v1.PATCH("/comments/:id", auth, controllers.UpdateComment)
		v1.DELETE("/comments/:id", auth, controllers.DeleteComment)

		// Reactions
		v1.POST("/reactions", auth, controllers.CreateReaction)
		v1.DELETE("/reactions/:id", auth, controllers.DeleteReaction)

		// Reports
		v1.POST("/reports", auth, controllers.CreateReport)
		v1.GET("/reports", auth, middleware.RequireScope("moderate:reports"), controllers.ListReports)
		v1.GET("/reports/:id", auth, middleware.RequireScope("moderate:reports"), controllers.GetReport)
		v1.PATCH("/reports/:id", auth, middleware.RequireScope("moderate:reports"), controllers.ReviewReport)

		// Proposals
		v1.POST("/proposals", auth, controllers.CreateProposal)
		v1.GET("/artisans/me/proposals", auth, controllers.ListMyProposals)
		v1.PATCH("/proposals/:id/status", auth, controllers.UpdateProposalStatus)

		// Media
		v1.POST("/media", auth, controllers.UploadMedia)
		v1.GET("/media/*key", controllers.GetMediaURL)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Artisan Market API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
