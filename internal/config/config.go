package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	DiscordToken string

	// Riot API
	RiotAPIKey string

	// Tracking data file
	DataFile string

	// Default platform region for lookups (e.g. eun1, na1, kr)
	DefaultRegion string

	// Polling
	PollIntervalSeconds int

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		RiotAPIKey:    os.Getenv("RIOT_API_KEY"),
		DataFile:      getEnvOrDefault("DATA_FILE", "./data/tracked_users.json"),
		DefaultRegion: getEnvOrDefault("DEFAULT_REGION", "eun1"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Parse poll interval
	intervalStr := getEnvOrDefault("POLL_INTERVAL_SECONDS", "120")
	interval, err := strconv.Atoi(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS: %w", err)
	}
	cfg.PollIntervalSeconds = interval

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
