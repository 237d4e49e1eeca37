// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Ticket collection storage
	StorageBackend string // "file" or "mongo"
	TicketsFile    string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL master data (airlines, airports); optional
	PostgresDSN string

	// Schedule lookup API
	ScheduleAPIURL         string
	ScheduleAPIKey         string
	ScheduleAPIHost        string
	ScheduleOAuthTokenURL  string
	ScheduleOAuthClientID  string
	ScheduleOAuthClientKey string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		TicketsFile:    getEnv("TICKETS_FILE", "scanresults/flugtickets.json"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "skyline"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		ScheduleAPIURL:         getEnv("SCHEDULE_API_URL", "https://aerodatabox.p.rapidapi.com"),
		ScheduleAPIKey:         getEnv("SCHEDULE_API_KEY", ""),
		ScheduleAPIHost:        getEnv("SCHEDULE_API_HOST", "aerodatabox.p.rapidapi.com"),
		ScheduleOAuthTokenURL:  getEnv("SCHEDULE_OAUTH_TOKEN_URL", ""),
		ScheduleOAuthClientID:  getEnv("SCHEDULE_OAUTH_CLIENT_ID", ""),
		ScheduleOAuthClientKey: getEnv("SCHEDULE_OAUTH_CLIENT_SECRET", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
