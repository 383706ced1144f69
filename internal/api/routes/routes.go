package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reviewhub/reviews-backend/internal/api/handlers"
	"github.com/reviewhub/reviews-backend/internal/api/middleware"
	"github.com/reviewhub/reviews-backend/internal/config"
	"github.com/reviewhub/reviews-backend/internal/services"
	"github.com/reviewhub/reviews-backend/pkg/logger"
)

// Stores bundles the storage backends selected at startup (Postgres or
// in-memory single-node mode).
type Stores struct {
	Reviews services.ReviewStore
	Users   services.UserStore
}

func SetupRoutes(router *gin.Engine, stores Stores, cfg *config.Config) {
	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(corsMiddleware(cfg))
	router.Use(middleware.RateLimit(cfg))

	// Initialize services
	policy := services.NewModerationPolicy(cfg.AllowAnonymousReviews)
	sentimentClient := services.NewSentimentClient(cfg.SentimentURL, cfg.SentimentAPIKey, cfg.SentimentTimeout)
	notifier := services.NewEmailNotifier(cfg)
	reviewService := services.NewReviewService(stores.Reviews, policy, sentimentClient, notifier, cfg.MaxPageSize)
	authService := services.NewAuthService(stores.Users, cfg.JWTSecret)

	// Initialize handlers
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(reviewService)
	authHandler := handlers.NewAuthHandler(authService)
	sentimentHandler := handlers.NewSentimentHandler(sentimentClient)

	// Health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes (paths match the web client)
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", middleware.RequireAuth(cfg), authHandler.Profile)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("", reviewHandler.List)
		reviews.POST("", middleware.OptionalAuth(cfg), reviewHandler.Create)
		reviews.DELETE("/:review_id", middleware.RequireAuth(cfg), reviewHandler.Delete)
		reviews.POST("/:review_id/reactions", middleware.RequireAuth(cfg), reviewHandler.React)
		reviews.POST("/:review_id/flag", middleware.RequireAuth(cfg), reviewHandler.Flag)
	}

	// The admin dashboard deletes through its own prefix as well.
	admin := api.Group("/admin", middleware.RequireAuth(cfg), middleware.AdminOnly())
	{
		admin.GET("/reviews", adminHandler.ListReviews)
		admin.DELETE("/reviews/:review_id", reviewHandler.Delete)
	}

	sentiment := api.Group("/sentiment")
	{
		sentiment.POST("/analyze", sentimentHandler.Analyze)
	}

	logger.Info("routes initialized")
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	return cors.New(corsConfig)
}
