package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string
	Port     string
	LogLevel string

	// Storage
	DataBackend string
	SQLitePath  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Sessions and persistence
	SaveDebounce   time.Duration
	SaveTimeout    time.Duration
	SessionIdleTTL time.Duration

	// Identity
	JWTSecret string
	JWTIssuer string

	// Messaging (optional)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataBackend: strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),
		SQLitePath:  getEnv("SQLITE_PATH", "finanzas.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "finanzas"),
		DBPassword:  getEnv("DB_PASSWORD", "finanzas"),
		DBName:      getEnv("DB_NAME", "finanzas"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		SaveDebounce:   getDuration("SAVE_DEBOUNCE", 500*time.Millisecond),
		SaveTimeout:    getDuration("SAVE_TIMEOUT", 10*time.Second),
		SessionIdleTTL: getDuration("SESSION_IDLE_TTL", 30*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "finanzas"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "budget.saved"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.DataBackend {
	case BackendPostgres, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("DATA_BACKEND must be one of postgres, sqlite, memory; got %q", c.DataBackend))
	}
	if c.DataBackend == BackendSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH is required when DATA_BACKEND=sqlite"))
	}
	if c.SaveDebounce <= 0 {
		errs = append(errs, errors.New("SAVE_DEBOUNCE must be positive"))
	}
	if c.SaveTimeout <= 0 {
		errs = append(errs, errors.New("SAVE_TIMEOUT must be positive"))
	}
	if c.SessionIdleTTL <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TTL must be positive"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Env == "production" && c.JWTSecret == "fallback-secret-key-for-dev-only" {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}

	return errors.Join(errs...)
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
