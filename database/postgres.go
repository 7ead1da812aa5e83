package database

import (
	"log"

	"bidly-backend/config"
	"bidly-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	var err error
	// TranslateError makes unique-constraint violations surface as
	// gorm.ErrDuplicatedKey, which is how duplicate invites and bids
	// are detected under concurrency.
	DB, err = gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Database connected successfully")

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectPlanFile{},
		&models.Invitation{},
		&models.Bid{},
		&models.AISummary{},
		&models.Referral{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database migrated successfully")
}
