package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"everywhere/internal/logging"

	"github.com/joho/godotenv"
)

// Catalog sources
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	PostgreSQL PostgreSQLConfig
	AIServer   AIServerConfig
	Recommend  RecommendConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// CatalogConfig selects where candidate spaces come from
type CatalogConfig struct {
	Source       string // static | postgres
	SeedDefaults bool   // upsert the built-in spaces into postgres on startup
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, wins over the individual fields
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// AIServerConfig holds the prediction server (AI Model 1 / AI Model 2) settings
type AIServerConfig struct {
	BaseURL        string
	PredictPath    string
	RecommendPath  string
	Timeout        int // seconds
	BreakerEnabled bool
	BreakerMinReqs int
	BreakerRatio   float64
	BreakerTimeout int // seconds spent open before a half-open probe

	// Sensor inputs for AI Model 1 are not collected yet; these are sent instead.
	PlaceholderImagePath string
	PlaceholderBluetooth int
}

// RecommendConfig holds the stand-in values used while the per-candidate
// features are not fetched live.
type RecommendConfig struct {
	PlaceholderPurposeScore float64
	PlaceholderPredictCount int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-Request-ID"),
		},
		Catalog: CatalogConfig{
			Source:       strings.ToLower(getEnv("CATALOG_SOURCE", CatalogStatic)),
			SeedDefaults: getEnvAsBool("CATALOG_SEED_DEFAULTS", false),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "everywhere"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		AIServer: AIServerConfig{
			BaseURL:              strings.TrimRight(getEnv("AI_SERVER_URL", "http://localhost:8000"), "/"),
			PredictPath:          getEnv("AI_PREDICT_COUNT_PATH", "/ai/predict/count"),
			RecommendPath:        getEnv("AI_RECOMMENDATION_PATH", "/api/internal/ai/recommendation"),
			Timeout:              getEnvAsInt("AI_SERVER_TIMEOUT", 10),
			BreakerEnabled:       getEnvAsBool("AI_BREAKER_ENABLED", true),
			BreakerMinReqs:       getEnvAsInt("AI_BREAKER_MIN_REQUESTS", 10),
			BreakerRatio:         getEnvAsFloat("AI_BREAKER_FAILURE_RATIO", 0.6),
			BreakerTimeout:       getEnvAsInt("AI_BREAKER_OPEN_SECONDS", 30),
			PlaceholderImagePath: getEnv("AI_PLACEHOLDER_IMAGE_PATH", "/path/to/image"),
			PlaceholderBluetooth: getEnvAsInt("AI_PLACEHOLDER_BLUETOOTH", 10),
		},
		Recommend: RecommendConfig{
			PlaceholderPurposeScore: getEnvAsFloat("RECOMMEND_PLACEHOLDER_PURPOSE_SCORE", 0.8),
			PlaceholderPredictCount: getEnvAsInt("RECOMMEND_PLACEHOLDER_PREDICT_COUNT", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogStatic, CatalogPostgres:
	default:
		return fmt.Errorf("invalid CATALOG_SOURCE %q: must be %q or %q", c.Catalog.Source, CatalogStatic, CatalogPostgres)
	}
	if c.AIServer.BaseURL == "" {
		return fmt.Errorf("AI_SERVER_URL must not be empty")
	}
	if c.AIServer.Timeout <= 0 {
		return fmt.Errorf("AI_SERVER_TIMEOUT must be positive, got %d", c.AIServer.Timeout)
	}
	if c.Recommend.PlaceholderPredictCount < 0 {
		return fmt.Errorf("RECOMMEND_PLACEHOLDER_PREDICT_COUNT must not be negative")
	}
	return nil
}

// AITimeout returns the outbound call timeout as a duration
func (c *AIServerConfig) AITimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logging.Warn().Str("key", key).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logging.Warn().Str("key", key).Float64("default", defaultValue).Msg("Invalid float value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logging.Warn().Str("key", key).Bool("default", defaultValue).Msg("Invalid boolean value, using default")
		return defaultValue
	}
	return value
}
