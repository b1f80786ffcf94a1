package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// Payment gateway credentials and endpoint
	PGAppID   string
	PGSecret  string
	PGBaseURL string

	// Public base URLs used for checkout return/notify links
	FrontendURL string
	BackendURL  string

	// Static FAQ table consumed by the chatbot
	FAQFile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		PGAppID:     os.Getenv("PG_APP_ID"),
		PGSecret:    os.Getenv("PG_SECRET_KEY"),
		PGBaseURL:   os.Getenv("PG_BASE_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		BackendURL:  os.Getenv("BACKEND_URL"),
		FAQFile:     os.Getenv("FAQ_FILE"),
	}

	return config, nil
}
