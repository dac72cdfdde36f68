package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/AkaakuHub/moshi-bingo/utils/logger"
)

// Config holds everything the server reads from the environment.
type Config struct {
	DatabaseURL    string
	Port           string
	AllowedOrigins []string
	MarkCachePath  string

	// Realtime delivery tuning.
	ConnectTimeout time.Duration
	PollInterval   time.Duration
	PollWindow     time.Duration

	// When true, the very first snapshot a client sees of a game that
	// already has drawn numbers is treated as a fresh draw, so the latest
	// number gets its reveal on reconnect.
	ReplayOnColdAttach bool
}

// Load reads .env (if present) and the environment. DATABASE_URL is the only
// required setting.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading environment variables")
	}

	v := viper.New()
	v.SetEnvPrefix("BINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// DATABASE_URL and PORT follow hosting-provider conventions, no prefix.
	v.BindEnv("database_url", "DATABASE_URL")
	v.BindEnv("port", "PORT")

	v.SetDefault("port", "4000")
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("mark_cache_path", "markcache.json")
	v.SetDefault("connect_timeout", 10*time.Second)
	v.SetDefault("poll_interval", 2*time.Second)
	v.SetDefault("poll_window", 10*time.Second)
	v.SetDefault("replay_on_cold_attach", true)

	cfg := &Config{
		DatabaseURL:        v.GetString("database_url"),
		Port:               v.GetString("port"),
		AllowedOrigins:     strings.Split(v.GetString("allowed_origins"), ","),
		MarkCachePath:      v.GetString("mark_cache_path"),
		ConnectTimeout:     v.GetDuration("connect_timeout"),
		PollInterval:       v.GetDuration("poll_interval"),
		PollWindow:         v.GetDuration("poll_window"),
		ReplayOnColdAttach: v.GetBool("replay_on_cold_attach"),
	}

	if cfg.DatabaseURL == "" {
		logger.Fatalf("DATABASE_URL is required in .env or environment")
	}

	return cfg
}
