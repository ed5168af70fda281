package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polarity-ml/polarity/config"
	"github.com/polarity-ml/polarity/internal/api"
	"github.com/polarity-ml/polarity/internal/classifier"
	"github.com/polarity-ml/polarity/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(os.Stdout)

	clf, err := classifier.FromEnv()
	if err != nil {
		slog.Error("[Main] Failed to initialize classifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := clf.(io.Closer); ok {
		defer closer.Close()
	}

	port := config.GetEnv("ANALYZER_PORT", "8000")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      api.NewRouter(api.NewHandler(clf)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("[Main] Analyzer listening",
			slog.String("port", port),
			slog.String("backend", clf.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("[Main] Shutting down analyzer")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("[Main] Forced shutdown", slog.String("error", err.Error()))
	}
}
