package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/polarity-ml/polarity/config"
	"github.com/polarity-ml/polarity/internal/clients"
	"github.com/polarity-ml/polarity/internal/gateway"
	"github.com/polarity-ml/polarity/internal/logging"
	"github.com/polarity-ml/polarity/internal/mcptools"
	"github.com/polarity-ml/polarity/internal/monitoring"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	// stdout carries the MCP frames; logs must stay on stderr
	logging.InitLogger(os.Stderr)

	baseURL := config.GetEnv("API_BASE_URL", clients.DEFAULT_BASE_URL)
	client := clients.NewAnalyzerClient(baseURL, secondsFromEnv("REQUEST_TIMEOUT_SECONDS", clients.DEFAULT_TIMEOUT))

	gw := gateway.New(client, gateway.Options{
		Concurrency:   intFromEnv("BATCH_CONCURRENCY", gateway.DEFAULT_CONCURRENCY),
		MaxBatchSize:  intFromEnv("BATCH_MAX_SIZE", gateway.DEFAULT_MAX_BATCH_SIZE),
		HealthTimeout: secondsFromEnv("HEALTH_TIMEOUT_SECONDS", clients.HEALTH_TIMEOUT),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.GetEnv("HEALTH_MONITOR", "false") == "true" {
		var healthy atomic.Bool
		go monitoring.MonitorAnalyzerHealth(ctx, gw, &healthy, 0)
	}

	slog.Info("[Main] Serving MCP on stdio", slog.String("analyzer", baseURL))
	if err := server.ServeStdio(mcptools.NewServer(gw).Build()); err != nil {
		slog.Error("[Main] MCP server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[Main] Invalid integer env var, using fallback",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return v
}

func secondsFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("[Main] Invalid duration env var, using fallback",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return time.Duration(v) * time.Second
}
