package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	MarketData MarketDataConfig
	Secrets    SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketDataConfig holds market data provider configuration.
// APIKey is the fallback provider key when no key is stored in the
// settings table or supplied per request. ConversionRate converts the
// provider's USD prices into the display currency at the boundary.
// RefreshCron schedules the periodic quote refresh job.
type MarketDataConfig struct {
	APIKey         string
	ConversionRate float64
	RefreshCron    string
}

// SecretsConfig holds the fernet key used to encrypt stored secrets.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	conversionRate, err := strconv.ParseFloat(getEnv("USD_INR_RATE", "83.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid USD_INR_RATE: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stockfolio.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		MarketData: MarketDataConfig{
			APIKey:         getEnv("FINNHUB_API_KEY", ""),
			ConversionRate: conversionRate,
			RefreshCron:    getEnv("QUOTE_REFRESH_CRON", "@every 15m"),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
