package config

import (
	"log/slog"
	"os"

	"github.com/subosito/gotenv"
)

// LoadEnv loads environment variables for the given environment name
// (e.g. "dev", "production"). Values already present in the OS environment
// are never overwritten. Missing env files are not an error.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		if err := gotenv.Load(); err != nil {
			slog.Warn("No .env file found, using OS environment",
				slog.String("env", env))
		}
	}
}

// GetEnv returns the value of key, or fallback when key is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
