package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable in the current
// environment. Production refuses to start on a missing JWT secret or an
// unconfigured postgres connection.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		if IsProduction() {
			errs = append(errs, "JWT_SECRET (or jwt_secret secret) is required")
		} else {
			// Development and test fall back to a fixed secret so the
			// stack runs without any setup.
			cfg.JWTSecret = "dev-insecure-secret"
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBUser == "" {
			errs = append(errs, "DB_USER (or db_user secret) is required for postgres")
		}
		if cfg.DBPassword == "" {
			errs = append(errs, "DB_PASSWORD (or db_password secret) is required for postgres")
		}
	case "sqlite":
		if cfg.DBPath == "" {
			errs = append(errs, "DB_PATH is required for sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown DB_DRIVER %q", cfg.DBDriver))
	}

	if cfg.S3Bucket == "" && cfg.UploadDir == "" {
		errs = append(errs, "either S3_BUCKET_NAME or UPLOAD_DIR must be set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
