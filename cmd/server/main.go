package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/reviewhub/reviews-backend/internal/api/routes"
	"github.com/reviewhub/reviews-backend/internal/config"
	"github.com/reviewhub/reviews-backend/internal/database"
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/internal/services"
	"github.com/reviewhub/reviews-backend/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg := config.Load()

	// Select storage: Postgres when DATABASE_URL is set, otherwise the
	// in-process store for single-node deployments.
	var stores routes.Stores
	if cfg.DatabaseURL != "" {
		db, err := database.Init(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to initialize database: ", err)
		}
		if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Fatal("Failed to seed admin account: ", err)
		}
		stores = routes.Stores{
			Reviews: services.NewGormReviewStore(db),
			Users:   services.NewGormUserStore(db),
		}
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		users := services.NewMemoryUserStore()
		seedMemoryAdmin(users, cfg)
		stores = routes.Stores{
			Reviews: services.NewMemoryReviewStore(),
			Users:   users,
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()
	routes.SetupRoutes(router, stores, cfg)

	// Start server
	logger.Info("Server starting on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server: ", err)
	}
}

func seedMemoryAdmin(users *services.MemoryUserStore, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     models.RoleAdmin,
	}
	if err := users.CreateUser(context.Background(), &admin); err != nil {
		logger.Fatal("Failed to seed admin account: ", err)
	}
}
