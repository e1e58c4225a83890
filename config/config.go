package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by database.New.
const (
	DriverSQLite     = "sqlite"
	DriverSQLitePure = "sqlite-pure"
	DriverPostgres   = "postgres"
)

// Document store backends understood by cloud.New.
const (
	DocumentStoreRedis = "redis"
	DocumentStoreS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Food API configuration
	FoodAPIBaseURL  string
	FoodAPIKeyURL   string
	FoodAPIKey      string
	FoodAPITimeout  time.Duration
	SearchRateLimit int

	// Cloud document store configuration
	DocumentStore string
	S3Bucket      string
	AWSRegion     string

	// TimeZone decides which calendar day an eating event belongs to.
	TimeZone string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Location returns the configured time zone, the server's local zone when
// unset.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// loadCommon reads the non-sensitive settings shared by every environment.
func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")

	cfg.DBDriver = getEnv("DB_DRIVER", DriverSQLite)
	cfg.DBPath = getEnv("DB_PATH", "recipe-tracker.db")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = getEnv("DB_NAME", "recipe_tracker")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.FoodAPIBaseURL = getEnv("FOOD_API_BASE_URL", "https://api.spoonacular.com")
	cfg.FoodAPIKeyURL = os.Getenv("FOOD_API_KEY_URL")
	cfg.FoodAPITimeout = time.Duration(getEnvInt("FOOD_API_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.SearchRateLimit = getEnvInt("SEARCH_RATE_LIMIT", 60)

	cfg.DocumentStore = getEnv("DOCUMENT_STORE", DocumentStoreRedis)
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.TimeZone = os.Getenv("TZ")
}

// loadCIConfig loads configuration for CI using environment variables only
func loadCIConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.FoodAPIKey = os.Getenv("FOOD_API_KEY")
}

// loadDevConfig loads configuration for development and tests. A .env file is
// optional; Docker secrets win over plain environment variables.
func loadDevConfig(cfg *Config) {
	_ = godotenv.Load()

	loadCommon(cfg)
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", "postgres")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET", "dev-secret-change-me")
	cfg.FoodAPIKey = secretOrEnv("food_api_key", "FOOD_API_KEY", "")
}

// loadProdConfig loads configuration for production. Sensitive values come
// from Docker secrets only.
func loadProdConfig(cfg *Config) {
	loadCommon(cfg)
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.FoodAPIKey = readSecret("food_api_key")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, envVar, def string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return getEnv(envVar, def)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
