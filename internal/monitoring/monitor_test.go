package monitoring

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polarity-ml/polarity/internal/models"
)

type flappingChecker struct {
	mu        sync.Mutex
	reachable bool
}

func (f *flappingChecker) CheckHealth(context.Context) models.HealthStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.HealthStatus{Reachable: f.reachable, BaseURL: "http://analyzer.test:8000"}
}

func (f *flappingChecker) set(reachable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reachable = reachable
}

func TestMonitorAnalyzerHealth(t *testing.T) {
	checker := &flappingChecker{reachable: true}

	var healthy atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		MonitorAnalyzerHealth(ctx, checker, &healthy, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, healthy.Load, time.Second, time.Millisecond,
		"flag should flip once the first probe succeeds")

	checker.set(false)
	require.Eventually(t, func() bool { return !healthy.Load() }, time.Second, time.Millisecond,
		"flag should follow the analyzer going down")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancellation")
	}
}
