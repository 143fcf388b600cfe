// Package config builds the process configuration once at startup.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
// A missing DatabaseURL is deliberately not a startup error: the store
// provider reports service-unavailable per request instead.
type Config struct {
	Addr        string
	DatabaseURL string
}

// Load reads .env overlays (base first, then local overrides) and builds the
// Config. Values already present in the real environment win over .env files.
func Load() Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return Config{
		Addr:        ":" + envOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
