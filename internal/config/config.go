package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"daytrip/internal/trip"
)

type Config struct {
	DatabasePath string
	RawDataDir   string
	ServerAddr   string
	Pipeline     trip.Options
}

// Load reads an optional .env file, then applies environment overrides on
// top of the defaults. A missing .env file is not an error.
func Load(path string) (Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	cfg := Config{
		DatabasePath: getenv("DATABASE_PATH", "daytrip.db"),
		RawDataDir:   getenv("RAW_DATA_DIR", "gps_data"),
		ServerAddr:   getenv("SERVER_ADDR", ":8080"),
		Pipeline:     trip.DefaultOptions(),
	}

	if v := os.Getenv("MAX_CYCLING_SPEED_KMH"); v != "" {
		if err := parseFloat(&cfg.Pipeline.MaxCyclingSpeedKmh, v); err != nil {
			return Config{}, fmt.Errorf("MAX_CYCLING_SPEED_KMH: %w", err)
		}
	}
	if v := os.Getenv("REST_DISTANCE_M"); v != "" {
		if err := parseFloat(&cfg.Pipeline.RestDistanceM, v); err != nil {
			return Config{}, fmt.Errorf("REST_DISTANCE_M: %w", err)
		}
	}
	if v := os.Getenv("MAX_TIME_GAP_SECONDS"); v != "" {
		if err := parseInt(&cfg.Pipeline.MaxTimeGapSec, v); err != nil {
			return Config{}, fmt.Errorf("MAX_TIME_GAP_SECONDS: %w", err)
		}
	}
	if v := os.Getenv("MIN_MOVEMENT_M"); v != "" {
		if err := parseFloat(&cfg.Pipeline.MinMovementM, v); err != nil {
			return Config{}, fmt.Errorf("MIN_MOVEMENT_M: %w", err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseInt(target *int, value string) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}

func parseFloat(target *float64, value string) error {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}
