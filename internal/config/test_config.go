package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If TEST_DATABASE_URL is not set, returns a Config with an empty URL
// which allows tests to use a fallback SQLite database
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("./../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.URL = os.Getenv("TEST_DATABASE_URL")
	cfg.Database.ConnectAttempts = 1
	cfg.Logging.Level = "debug"
	return cfg, nil
}
