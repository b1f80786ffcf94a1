package config

import (
	"fmt"
	"time"

	"github.com/alumnifund/AlumniFund/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	// Connection pool settings
	sqlDB, err := DB.DB()
	if err != nil {
		panic(fmt.Sprintf("Failed to get database handle: %v", err))
	}
	sqlDB.SetMaxIdleConns(15)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := MigrateModels(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// MigrateModels runs the schema migration for all application models.
// Shared with the test setup, which runs against a separate database.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Campaign{},
		&models.Donation{},
		&models.PaymentOrder{},
		&models.BlacklistedToken{},
	)
}
