package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
		BaseURL string
	}

	// Database configuration. Host empty means "run without Postgres" and
	// fall back to the file-backed character store.
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		Timeout  time.Duration
	}

	// Redis cache for catalog reads. Optional; an empty address disables it.
	Redis struct {
		Addr string
	}

	// Completion service configuration
	OpenAI struct {
		APIKey  string
		BaseURL string
	}

	// Payment collaborator configuration
	Stripe struct {
		SecretKey string
	}

	// Chat credit gating
	Credits struct {
		PerSession int
	}

	// Local character store (userCreatedCharacters layout)
	Store struct {
		Dir string
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
		AllowedOrigins []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}

	// Session cache settings
	Sessions struct {
		TTL         time.Duration
		MaxSessions int
		PurgeWindow time.Duration
	}

	// OpenAPI schema used by the request-validation middleware
	OpenAPISchemaPath string

	// Default language for user-facing messages
	Language string
}

var (
	instance *Config
	once     sync.Once
)

// New creates a new Config instance with values from environment variables.
// Uses singleton pattern to ensure only one instance exists
func New() *Config {
	once.Do(func() {
		// Load .env file if exists
		godotenv.Load()

		instance = &Config{}

		// Server config
		instance.Server.Port = getEnvString("PORT", "8081")
		instance.Server.Env = getEnvString("APP_ENV", "development")
		instance.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)
		instance.Server.BaseURL = getEnvString("BASE_URL", "http://localhost:"+instance.Server.Port)

		// Database config
		instance.Database.Host = getEnvString("DB_HOST", "")
		instance.Database.Port = getEnvString("DB_PORT", "5432")
		instance.Database.User = getEnvString("DB_USER", "postgres")
		instance.Database.Password = getEnvString("DB_PASSWORD", "postgres")
		instance.Database.Name = getEnvString("DB_NAME", "character_chat")
		instance.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
		instance.Database.Timeout = getEnvDuration("DB_TIMEOUT", 5*time.Second)

		// Redis config
		instance.Redis.Addr = getEnvString("REDIS_URL", "")

		// Completion service config. Keys may also come from the secrets
		// manager; these are the env fallbacks.
		instance.OpenAI.APIKey = getEnvString("OPENAI_API_KEY", "")
		instance.OpenAI.BaseURL = getEnvString("OPENAI_BASE_URL", "")

		// Stripe config
		instance.Stripe.SecretKey = getEnvString("STRIPE_SECRET_KEY", "")

		// Credits config
		instance.Credits.PerSession = getEnvInt("CREDITS_PER_SESSION", 50)

		// Store config
		instance.Store.Dir = getEnvString("STORE_DIR", "./data")

		// Security config
		instance.Security.RateLimit = float64(getEnvInt("RATE_LIMIT", 5))
		instance.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)
		instance.Security.AllowedOrigins = getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"})

		// Logging config
		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")

		// Session cache settings
		instance.Sessions.TTL = getEnvDuration("SESSION_TTL", 2*time.Hour)
		instance.Sessions.MaxSessions = getEnvInt("SESSION_MAX", 1000)
		instance.Sessions.PurgeWindow = getEnvDuration("SESSION_PURGE_WINDOW", 10*time.Minute)

		instance.OpenAPISchemaPath = getEnvString("OPENAPI_SCHEMA_PATH", "api/openapi.yaml")

		instance.Language = getEnvString("APP_LANGUAGE", "ja")
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
