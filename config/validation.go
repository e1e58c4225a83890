package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == CI {
			add("JWT_SECRET", "environment variable is required in CI environment")
		} else {
			add("jwt_secret", "secret is required")
		}
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverSQLitePure:
		if cfg.DBPath == "" {
			add("DB_PATH", "required for sqlite")
		}
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
			add("DB_HOST", "host, port and name are required for postgres")
		}
		if cfg.DBPassword == "" && cfg.Env != Development && cfg.Env != Test {
			add("db_password", "secret is required")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.DocumentStore {
	case DocumentStoreRedis:
	case DocumentStoreS3:
		if cfg.S3Bucket == "" {
			add("S3_BUCKET_NAME", "required when DOCUMENT_STORE=s3")
		}
	default:
		add("DOCUMENT_STORE", fmt.Sprintf("unsupported backend %q", cfg.DocumentStore))
	}

	if cfg.Env == Production && cfg.FoodAPIKeyURL == "" && cfg.FoodAPIKey == "" {
		add("FOOD_API_KEY_URL", "a key service URL or food_api_key secret is required in production")
	}

	if cfg.TimeZone != "" {
		if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
			add("TZ", err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
