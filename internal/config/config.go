package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DatabaseURL string

	// One credential per external data source.
	GeocodeAPIKey string
	WeatherAPIKey string
	YelpAPIKey    string
	MovieAPIKey   string
	MeetupAPIKey  string
	TrailAPIKey   string

	// HTTPTimeout bounds every outbound API call.
	HTTPTimeout time.Duration

	// StatsInterval controls how often store stats are reported.
	StatsInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.GeocodeAPIKey = os.Getenv("GEOCODE_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	cfg.YelpAPIKey = os.Getenv("YELP_API_KEY")
	cfg.MovieAPIKey = os.Getenv("MOVIE_API_KEY")
	cfg.MeetupAPIKey = os.Getenv("MEETUP_API_KEY")
	cfg.TrailAPIKey = os.Getenv("TRAIL_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	statsStr := getenvDefault("STATS_INTERVAL", "15m")
	statsInterval, err := time.ParseDuration(statsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_INTERVAL: %w", err)
	}
	cfg.StatsInterval = statsInterval

	cfg.Port = getenvDefault("PORT", "3000")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
