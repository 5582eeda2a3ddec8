package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	FrontendURL  string

	// Logging configuration
	LogFormat string
	LogLevel  string

	// Database configuration
	PostgresDBURL string

	// Redis configuration
	RedisAddr     string
	RedisPassword string

	// Kakao OAuth configuration
	KakaoClientID     string
	KakaoClientSecret string
	KakaoRedirectURL  string
	KakaoTimeout      time.Duration

	// JWT configuration
	JWTSecret            string
	JWTAccessExpiration  time.Duration
	JWTRefreshExpiration time.Duration

	// AI summarizer configuration
	OpenRouterAPIKey  string
	OpenRouterModelID string
	OpenRouterTimeout time.Duration
	MaxSummaryWorkers int
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 15)) * time.Second,
		FrontendURL:  getEnvString("FRONTEND_URL", "http://localhost:3000"),

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),

		// Database configuration
		PostgresDBURL: os.Getenv("POSTGRES_DB_URL"),

		// Redis configuration
		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		// Kakao OAuth configuration
		KakaoClientID:     os.Getenv("KAKAO_CLIENT_ID"),
		KakaoClientSecret: os.Getenv("KAKAO_CLIENT_SECRET"),
		KakaoRedirectURL:  os.Getenv("KAKAO_REDIRECT_URL"),
		KakaoTimeout:      time.Duration(getEnvInt("KAKAO_TIMEOUT", 10)) * time.Second,

		// JWT configuration
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTAccessExpiration:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRATION", 3600)) * time.Second,
		JWTRefreshExpiration: time.Duration(getEnvInt("JWT_REFRESH_EXPIRATION", 1209600)) * time.Second,

		// AI summarizer configuration
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModelID: getEnvString("OPENROUTER_MODEL_ID", "meta-llama/llama-3.3-70b-instruct:free"),
		OpenRouterTimeout: time.Duration(getEnvInt("OPENROUTER_TIMEOUT", 60)) * time.Second,
		MaxSummaryWorkers: getEnvInt("MAX_SUMMARY_WORKERS", 5),
	}

	// Validate critical configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.PostgresDBURL == "" {
		log.Println("Warning: No Postgres URL provided. Database operations will fail.")
	}

	if config.KakaoClientID == "" || config.KakaoClientSecret == "" {
		log.Println("Warning: Kakao OAuth client credentials are not set. Login will fail.")
	}

	if config.JWTSecret == "" {
		log.Println("Warning: No JWT secret provided. Token signing will fail.")
	}

	if config.OpenRouterAPIKey == "" {
		log.Println("Warning: No OpenRouter API key provided. Summary requests will fail.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
