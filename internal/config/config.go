package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	S3      S3Config
	Meeting MeetingConfig
	OTEL    OTELConfig
}

// ServerConfig holds HTTP server configuration. An empty AllowedUploadTypes
// means uploads of any content type are accepted.
type ServerConfig struct {
	Port               string
	MaxUploadSizeMB    int64
	AllowedUploadTypes []string
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
}

// JWTConfig holds token signing configuration. The secret is injected here
// and held by the token service; nothing reads it from a global.
type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// S3Config holds object-storage configuration (any S3-compatible endpoint)
type S3Config struct {
	Endpoint string
	Region   string
	Bucket   string
}

// MeetingConfig holds meeting-link generation configuration
type MeetingConfig struct {
	BaseURL string
}

// OTELConfig holds OpenTelemetry export configuration
type OTELConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	InstanceID     string
	Token          string
}

// Load reads configuration from environment variables
// It attempts to load from .env file first, then falls back to system env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			MaxUploadSizeMB:    getEnvAsInt64("MAX_UPLOAD_SIZE_MB", 10),
			AllowedUploadTypes: getEnvAsSlice("UPLOAD_ALLOWED_TYPES", nil),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "crewdesk"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			TokenTTL: getEnvAsDuration("JWT_TOKEN_TTL", 24*time.Hour),
		},
		S3: S3Config{
			Endpoint: getEnv("S3_ENDPOINT", "http://localhost:8333"),
			Region:   getEnv("S3_REGION", "us-east-1"),
			Bucket:   getEnv("S3_BUCKET", "crewdesk-files"),
		},
		Meeting: MeetingConfig{
			BaseURL: getEnv("MEETING_BASE_URL", "https://meet.jit.si"),
		},
		OTEL: OTELConfig{
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "crewdesk-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnv("OTEL_ENVIRONMENT", "development"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			InstanceID:     getEnv("OTEL_INSTANCE_ID", ""),
			Token:          getEnv("OTEL_TOKEN", ""),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TOKEN_TTL must be positive")
	}
	if c.OTEL.Enabled && c.OTEL.Endpoint == "" {
		return fmt.Errorf("OTEL_ENDPOINT is required when OTEL_ENABLED is set")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice retrieves an environment variable as a comma-separated list
// or returns a default value
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration retrieves an environment variable as a duration string
// (e.g. "24h", "15m") or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
