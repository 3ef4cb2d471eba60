package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	AppEnv       string
	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration
	APIKey       string
	FrontendURL  string

	GoogleClientID     string
	GoogleTokenInfoURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	WardZonesPath string
	DivisionsPath string

	RedisAddr     string
	RedisPassword string

	IssueRateLimit  int
	IssueRateWindow time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		AppEnv:       getEnv("APP_ENV", "development"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "civiclens"),
		MongoTimeout: getEnvDuration("MONGO_TIMEOUT", 10*time.Second),
		APIKey:       getEnv("API_KEY", "dev-key"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleTokenInfoURL: getEnv("GOOGLE_TOKENINFO_URL", "https://www.googleapis.com/oauth2/v3/tokeninfo"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		WardZonesPath: getEnv("WARD_ZONES_PATH", "data/ward-zones.json"),
		DivisionsPath: getEnv("DIVISIONS_PATH", "data/divisions.geojson"),

		RedisAddr:     getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		IssueRateLimit:  getEnvInt("ISSUE_RATE_LIMIT", 20),
		IssueRateWindow: getEnvDuration("ISSUE_RATE_WINDOW", 24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
