// Package config loads runtime settings from the environment, with an
// optional .env overlay for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every runtime setting of the service.
//
// DatabaseDSN empty means contact submissions are persisted to the JSON
// fallback file only. SMTPHost empty disables outbound email entirely.
type Config struct {
	Port         string
	APIKey       string
	DataFile     string
	ContactsFile string
	UploadDir    string
	DatabaseDSN  string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string
	AdminEmail   string
	LogLevel     string
}

// LoadConfig reads the optional .env file and builds the Config from the
// environment, falling back to development defaults.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:         getEnv("PORT", "10000"),
		APIKey:       getEnv("API_KEY", "labmath_api_secret_2024"),
		DataFile:     getEnv("DATA_FILE", "data/data.json"),
		ContactsFile: getEnv("CONTACTS_FILE", "data/contacts.json"),
		UploadDir:    getEnv("UPLOAD_DIR", "static/uploads"),
		DatabaseDSN:  getEnv("DATABASE_URL", ""),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPSender:   getEnv("SMTP_SENDER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
