package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockgame/Stock-Game-Backend/internal/model"
	"github.com/stockgame/Stock-Game-Backend/internal/validation"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Game     GameConfig
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

// GameConfig holds the valuation pipeline's tunables.
type GameConfig struct {
	HistoryStart    time.Time           // first date of the price history window
	FetchMaxRetries int                 // total provider attempts per symbol
	FetchRetryDelay time.Duration       // fixed pause between attempts
	CacheTTL        time.Duration       // price matrix memoization lifetime
	RankingMetric   model.RankingMetric // dollar or percent leaderboard scoring
	RefreshSchedule string              // cron spec for periodic cache invalidation
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	historyStart, err := time.Parse("2006-01-02", getEnv("HISTORY_START_DATE", "2024-01-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_START_DATE: %w", err)
	}
	// The price window runs from the history start to the current day; a
	// start in the future would make every fetch window empty.
	if err := validation.ValidateDateRange(historyStart, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("HISTORY_START_DATE is in the future: %w", err)
	}

	retries, err := getEnvInt("FETCH_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}

	retryDelay, err := getEnvDuration("FETCH_RETRY_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getEnvDuration("CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolios.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Game: GameConfig{
			HistoryStart:    historyStart,
			FetchMaxRetries: retries,
			FetchRetryDelay: retryDelay,
			CacheTTL:        cacheTTL,
			RankingMetric:   model.RankingMetric(getEnv("RANKING_METRIC", string(model.RankByDollar))),
			RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@hourly"),
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

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvDuration gets a duration environment variable (e.g. "30s", "1h")
// or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
