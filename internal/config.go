package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	DatabaseUrl string

	// Session signing and the single admin principal. All three are
	// required: serving without them is unsafe, so NewConfig fails
	// instead of falling back to a default.
	AuthSecret        string
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string // optional bcrypt hash, takes precedence over AdminPassword

	// Image storage configuration
	StorageProvider string // "local", "r2" or "cloudinary"

	// Local storage (development)
	LocalStoragePath string
	LocalStorageURL  string

	// R2 / S3-compatible storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string

	// Cloudinary (production image CDN with background removal)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Metrics endpoint authentication.
	// If both are empty, the /metrics endpoint will be unprotected.
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		StorageProvider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./storage"),
		LocalStorageURL:  getEnv("LOCAL_STORAGE_URL", "http://localhost:8080/files"),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_SECRET", ""),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required configuration. Error messages name the variable for the
	// operator; they are never echoed to HTTP clients.
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.AuthSecret = os.Getenv("AUTH_SECRET")
	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required")
	}

	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}

	// Validate storage configuration
	switch cfg.StorageProvider {
	case "local":
	case "r2":
		if cfg.R2AccountID == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID is required when STORAGE_PROVIDER is 'r2'")
		}
		if cfg.R2AccessKeyID == "" {
			return nil, fmt.Errorf("R2_ACCESS_KEY_ID is required when STORAGE_PROVIDER is 'r2'")
		}
		if cfg.R2SecretAccessKey == "" {
			return nil, fmt.Errorf("R2_SECRET_ACCESS_KEY is required when STORAGE_PROVIDER is 'r2'")
		}
		if cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_BUCKET_NAME is required when STORAGE_PROVIDER is 'r2'")
		}
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" {
			return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME is required when STORAGE_PROVIDER is 'cloudinary'")
		}
		if cfg.CloudinaryAPIKey == "" {
			return nil, fmt.Errorf("CLOUDINARY_KEY is required when STORAGE_PROVIDER is 'cloudinary'")
		}
		if cfg.CloudinaryAPISecret == "" {
			return nil, fmt.Errorf("CLOUDINARY_SECRET is required when STORAGE_PROVIDER is 'cloudinary'")
		}
	default:
		return nil, fmt.Errorf("STORAGE_PROVIDER must be 'local', 'r2' or 'cloudinary', got: %s", cfg.StorageProvider)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
