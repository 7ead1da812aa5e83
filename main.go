package main

import (
	"log"

	"bidly-backend/config"
	"bidly-backend/database"
	"bidly-backend/handlers"
	"bidly-backend/middleware"
	"bidly-backend/models"
	"bidly-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// External collaborators
	summarizer := services.NewSummarizerFromConfig()
	fileStore := services.NewFileStoreFromConfig()

	bidHandler := handlers.NewBidHandler(summarizer)
	aiHandler := handlers.NewAIHandler(summarizer)
	fileHandler := handlers.NewFileHandler(fileStore)

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Static("/uploads", config.AppConfig.UploadDir)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/verify-invitation/:token", handlers.VerifyInvitation)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetMe)
		api.PUT("/users/me", handlers.UpdateMyProfile)
		api.GET("/users/me/guarantee", handlers.GetMyGuarantee)
		api.GET("/users/subs", handlers.GetSubcontractors)

		// Referrals (open to every authenticated user; growth loop shouldn't
		// be gated behind marketplace access)
		api.GET("/referrals/stats", handlers.GetReferralStats)
		api.POST("/referrals/invite", handlers.SendReferralInvite)
		api.GET("/referrals/leaderboard", handlers.GetReferralLeaderboard)

		// File uploads
		api.POST("/files/upload", fileHandler.Upload)

		// Marketplace (requires admin-granted access)
		marketplace := api.Group("")
		marketplace.Use(middleware.RequireBidlyAccess())
		{
			// GC projects
			gc := marketplace.Group("/projects/gc")
			gc.Use(middleware.RequireRole(models.RoleGC, models.RoleAdmin))
			{
				gc.POST("", handlers.CreateProject)
				gc.GET("", handlers.GetGCProjects)
				gc.GET("/:id", handlers.GetProject)
				gc.PUT("/:id", handlers.UpdateProject)
				gc.DELETE("/:id", handlers.DeleteProject)
				gc.POST("/:id/invite", handlers.InviteSubcontractor)
				gc.GET("/:id/progress", handlers.GetProjectProgress)
				gc.POST("/:id/plans", handlers.AttachPlanFile)
			}

			// Sub projects
			sub := marketplace.Group("/projects/sub")
			sub.Use(middleware.RequireRole(models.RoleSub))
			{
				sub.GET("", handlers.GetSubProjects)
				sub.GET("/:id", handlers.GetSubProject)
				sub.POST("/:id/respond", handlers.RespondToInvitation)
			}

			// Bids
			marketplace.POST("/bids/project/:id", middleware.RequireRole(models.RoleSub), bidHandler.SubmitBid)
			marketplace.GET("/bids/me", middleware.RequireRole(models.RoleSub), handlers.GetMyBids)
			marketplace.GET("/bids/project/:id", middleware.RequireRole(models.RoleGC, models.RoleAdmin), handlers.GetProjectBids)
			marketplace.PUT("/bids/:id/status", middleware.RequireRole(models.RoleGC, models.RoleAdmin), handlers.UpdateBidStatus)

			// AI
			ai := marketplace.Group("/ai")
			ai.Use(middleware.RequireRole(models.RoleGC, models.RoleAdmin))
			{
				ai.POST("/projects/:id/summarize-plan", aiHandler.SummarizePlan)
				ai.POST("/projects/:id/compare-bids", aiHandler.CompareBids)
			}
		}

		// Admin
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", handlers.GetUsers)
			admin.GET("/projects", handlers.GetProjects)
			admin.PUT("/users/:id/access", handlers.ToggleAccess)
			admin.PUT("/users/:id/subscription", handlers.UpdateSubscriptionTier)
			admin.POST("/reset-monthly-invites", handlers.ResetMonthlyInvites)
		}
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
