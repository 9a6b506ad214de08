package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Lending  LendingConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// LendingConfig holds the lending policy parameters.
// The defaults (500 / 400 / 10) are business policy, not structural limits.
type LendingConfig struct {
	DebtLimit        float64 // members at or above this debt cannot borrow
	DebtWarning      float64 // members at or above this debt are flagged as approaching the limit
	DailyFee         float64 // rent fee per full day on loan, currency units
	OverdueAfterDays int     // days on loan before the overdue scanner reports a transaction
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		Lending:  loadLendingConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "libralend"),
	}
}

// loadLendingConfig loads lending policy parameters
func loadLendingConfig() LendingConfig {
	debtLimit, _ := strconv.ParseFloat(getEnv("DEBT_LIMIT", "500"), 64)
	debtWarning, _ := strconv.ParseFloat(getEnv("DEBT_WARNING", "400"), 64)
	dailyFee, _ := strconv.ParseFloat(getEnv("DAILY_RENT_FEE", "10"), 64)
	overdueDays, _ := strconv.Atoi(getEnv("OVERDUE_AFTER_DAYS", "14"))

	return LendingConfig{
		DebtLimit:        debtLimit,
		DebtWarning:      debtWarning,
		DailyFee:         dailyFee,
		OverdueAfterDays: overdueDays,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origin
		return "https://library.example.org"
	}
	return origins
}
