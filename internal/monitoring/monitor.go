package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/polarity-ml/polarity/internal/models"
)

const HEALTHCHECK_TIMER = 15

// HealthChecker reports analyzer reachability. *gateway.Gateway satisfies it.
type HealthChecker interface {
	CheckHealth(ctx context.Context) models.HealthStatus
}

// MonitorAnalyzerHealth polls the analyzer until ctx is done, mirroring the
// latest state into healthy. An interval <= 0 means the default cadence of
// HEALTHCHECK_TIMER seconds. Tool calls work regardless of the flag; it
// exists so operators see a down analyzer in the logs before a tool does.
func MonitorAnalyzerHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second * HEALTHCHECK_TIMER
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := checker.CheckHealth(ctx)
			healthy.Store(status.Reachable)
			if !status.Reachable {
				slog.Warn("[HealthCheck] Analyzer is unreachable",
					slog.String("base_url", status.BaseURL),
					slog.String("error", status.Error))
			}
		}
	}
}
