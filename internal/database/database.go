package database

import (
	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/reviewhub/reviews-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Init(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate schemas
	err = db.AutoMigrate(
		&models.User{},
		&models.Review{},
		&models.Reaction{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SeedAdmin creates the admin account from configuration if it does
// not exist yet. Registration never produces admins.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: password, // hashed in BeforeCreate hook
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("seeded admin account " + email)
	return nil
}
