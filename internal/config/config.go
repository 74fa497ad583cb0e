package config

import "os"

// Config carries the process-level settings. Values come from the
// environment with sensible defaults for local development.
type Config struct {
	Env          string
	LogLevel     string
	SnapshotPath string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "homespace_state.json"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
