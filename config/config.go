// ABOUTME: Configuration loader for the migration assessor
// ABOUTME: Loads settings from environment variables (and an optional .env file) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by STORE_BACKEND and OBJECT_BACKEND.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
	BackendS3       = "s3"
	BackendDir      = "dir"
)

const DefaultTableName = "MigrationData"

type Config struct {
	// Server
	Port               string
	CORSAllowedOrigins []string // allowed CORS origins (empty = allow all)
	RateLimitEnabled   bool     // Enable rate limiting (default: true)
	RateLimitDefault   int      // Requests per minute per client (default: 100)

	// Storage
	TableName      string        // DynamoDB table (default: MigrationData)
	StoreBackend   string        // dynamodb or memory
	ObjectBackend  string        // s3 or dir
	ObjectDir      string        // root directory for the dir backend
	MaxObjectBytes int64         // largest inventory object accepted
	LookupCacheTTL time.Duration // 0 disables the lookup cache

	// AWS
	AWSRegion          string
	AWSEndpoint        string // optional override, e.g. LocalStack
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load reads configuration from the environment. If ENV_FILE is set that
// file must exist; otherwise a .env in the working directory is loaded when
// present. Variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitDefault:   getEnvInt("RATE_LIMIT_DEFAULT", 100),

		TableName:      getEnv("DYNAMODB_TABLE", DefaultTableName),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendDynamoDB)),
		ObjectBackend:  strings.ToLower(getEnv("OBJECT_BACKEND", BackendS3)),
		ObjectDir:      getEnv("OBJECT_DIR", "."),
		MaxObjectBytes: int64(getEnvInt("MAX_OBJECT_BYTES", 10<<20)),
		LookupCacheTTL: time.Duration(getEnvInt("LOOKUP_CACHE_TTL", defaultLookupCacheTTL())) * time.Second,

		AWSRegion:          getEnv("AWS_REGION", getEnv("AWS_DEFAULT_REGION", "us-east-1")),
		AWSEndpoint:        os.Getenv("AWS_ENDPOINT_URL"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultLookupCacheTTL is 30 seconds, or 0 inside AWS Lambda. Lookups there
// must not depend on state held by one execution environment.
func defaultLookupCacheTTL() int {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return 0
	}
	return 30
}

// Validate checks enumerations and ranges
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendDynamoDB, BackendMemory, c.StoreBackend)
	}
	switch c.ObjectBackend {
	case BackendS3, BackendDir:
	default:
		return fmt.Errorf("OBJECT_BACKEND must be %q or %q, got %q", BackendS3, BackendDir, c.ObjectBackend)
	}
	if c.TableName == "" {
		return fmt.Errorf("DYNAMODB_TABLE must not be empty")
	}
	if c.RateLimitDefault < 1 || c.RateLimitDefault > 10000 {
		return fmt.Errorf("RATE_LIMIT_DEFAULT must be between 1 and 10000, got %d", c.RateLimitDefault)
	}
	if c.MaxObjectBytes < 1 {
		return fmt.Errorf("MAX_OBJECT_BYTES must be positive, got %d", c.MaxObjectBytes)
	}
	if c.LookupCacheTTL < 0 {
		return fmt.Errorf("LOOKUP_CACHE_TTL must not be negative, got %s", c.LookupCacheTTL)
	}
	return nil
}

func loadEnvFile() error {
	if path := os.Getenv("ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load ENV_FILE %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
