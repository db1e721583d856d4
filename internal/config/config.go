package config

import (
	"log"
	"os"
)

// Config carries the process-level settings every deployment must
// provide. Optional subsystems (Redis response caching, rate
// limiting, the booking event queue, demo seeding) load their own
// settings through the dedicated loaders in this package and degrade
// gracefully when unset.
type Config struct {
	Env      string // deployment environment label (dev, staging, prod)
	Port     string // HTTP listen port
	SeedDemo bool   // populate the store with demo catalog data at startup
}

// Load reads the required environment variables and exits the process
// if one is missing. Call it after godotenv has had a chance to load
// a local .env file.
func Load() Config {
	return Config{
		Env:      must("APP_ENV"),
		Port:     must("APP_PORT"),
		SeedDemo: envBool("SEED_DEMO_DATA", false),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
