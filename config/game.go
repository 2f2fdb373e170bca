package config

import (
	game_constants "Stop/constants/game"
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the env-tunable game timings. Everything else about a
// room comes from its own settings.
type Config struct {
	RoundDuration time.Duration
	GracePeriod   time.Duration
}

// Load reads the game configuration from the environment, falling back
// to the defaults in constants/game.
func Load() *Config {
	cfg := &Config{
		RoundDuration: game_constants.DefaultRoundDuration,
		GracePeriod:   game_constants.DefaultGracePeriod,
	}

	if d, ok := secondsFromEnv("STOP_ROUND_SECONDS"); ok {
		cfg.RoundDuration = d
	}
	if d, ok := secondsFromEnv("STOP_GRACE_SECONDS"); ok {
		cfg.GracePeriod = d
	}

	log.Printf("[CONFIG] round duration: %s, reconnection grace period: %s",
		cfg.RoundDuration, cfg.GracePeriod)

	return cfg
}

func secondsFromEnv(key string) (time.Duration, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		log.Printf("[CONFIG] ignoring invalid %s=%q", key, value)
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
