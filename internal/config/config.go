// Package config loads application settings from defaults, an optional
// config file, a .env file and the process environment, in increasing order
// of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"posfinance/internal/logger"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	MigrationsPath string

	// Auth
	JWTSecret        string
	JWTExpirationDur time.Duration
	PipelineAPIKey   string
}

var appConfig *Config

var defaults = map[string]interface{}{
	"PORT":            "8080",
	"ENV":             "development",
	"DB_DRIVER":       "postgres",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "posfinance",
	"DB_PASSWORD":     "posfinance",
	"DB_NAME":         "posfinance",
	"DB_SSLMODE":      "disable",
	"DB_PATH":         "posfinance.db",
	"MIGRATIONS_PATH": "migrations",
	"JWT_SECRET":      "fallback-secret-key-for-dev-only",
	"JWT_EXPIRES_IN":  "24h",
}

// Load loads configuration. CONFIG_FILE may point to a YAML, TOML or JSON file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using environment only")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	config := &Config{
		Port: v.GetString("PORT"),
		Env:  v.GetString("ENV"),

		DBDriver:   v.GetString("DB_DRIVER"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),
		DBPath:     v.GetString("DB_PATH"),

		MigrationsPath: v.GetString("MIGRATIONS_PATH"),

		JWTSecret:      v.GetString("JWT_SECRET"),
		PipelineAPIKey: v.GetString("PIPELINE_API_KEY"),
	}

	expStr := v.GetString("JWT_EXPIRES_IN")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		logger.Get().Warnf("invalid JWT_EXPIRES_IN value '%s', falling back to 24h", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	if config.DBDriver != "postgres" && config.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DBDriver)
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			logger.Get().Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the process-wide configuration. Intended for tests.
func Set(cfg *Config) {
	appConfig = cfg
}

// DSN returns the gorm connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrationURL returns the golang-migrate database URL.
func (c *Config) MigrationURL() string {
	if c.DBDriver == "sqlite" {
		return "sqlite3://" + c.DBPath
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
