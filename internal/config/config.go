// Package config loads server settings from .env files and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the API server configuration.
type Config struct {
	Addr            string
	AllowedOrigins  []string
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxBodyBytes    int64
	EnableHSTS      bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadEnvFiles reads .env and .env.local if present. Variables already set in
// the process environment are never overridden.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from .env files, the environment and defaults.
func Load() (Config, error) {
	LoadEnvFiles()

	var (
		cfg Config
		err error
	)

	cfg.Addr = getEnv("APP_ADDR", ":8080")
	cfg.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", ""))

	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64); err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil {
		return Config{}, fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("parse MAX_BODY_BYTES: %w", err)
	}
	if cfg.EnableHSTS, err = strconv.ParseBool(getEnv("ENABLE_HSTS", "false")); err != nil {
		return Config{}, fmt.Errorf("parse ENABLE_HSTS: %w", err)
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", "5s", &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", "10s", &cfg.WriteTimeout},
		{"IDLE_TIMEOUT", "60s", &cfg.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = time.ParseDuration(getEnv(d.key, d.def)); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
