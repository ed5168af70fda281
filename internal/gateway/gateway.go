// Package gateway sits between the MCP tool surface and the sentiment
// analyzer service. It owns input validation, request fan-out, and the
// translation of transport errors into per-text failure outcomes, so the
// tool layer never has to inspect an error chain.
package gateway

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polarity-ml/polarity/internal/clients"
	"github.com/polarity-ml/polarity/internal/models"
)

const (
	DEFAULT_CONCURRENCY    = 8
	MAX_CONCURRENCY        = 10
	DEFAULT_MAX_BATCH_SIZE = 50
)

// AnalyzerAPI is the slice of the analyzer client the gateway depends on.
type AnalyzerAPI interface {
	Predict(ctx context.Context, text, requestID string) (*models.PredictResponse, error)
	Health(ctx context.Context) (*models.HealthResponse, error)
	BaseURL() string
}

type Options struct {
	// Concurrency caps in-flight predict requests during a batch. Zero means
	// DEFAULT_CONCURRENCY; values above MAX_CONCURRENCY are clamped.
	Concurrency int
	// MaxBatchSize is the largest batch the tool surface will accept.
	MaxBatchSize int
	// HealthTimeout bounds each CheckHealth probe.
	HealthTimeout time.Duration
}

type Gateway struct {
	api  AnalyzerAPI
	opts Options
}

func New(api AnalyzerAPI, opts Options) *Gateway {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DEFAULT_CONCURRENCY
	}
	if opts.Concurrency > MAX_CONCURRENCY {
		opts.Concurrency = MAX_CONCURRENCY
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = DEFAULT_MAX_BATCH_SIZE
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = clients.HEALTH_TIMEOUT
	}

	slog.Info("[Gateway] Initialized",
		slog.String("base_url", api.BaseURL()),
		slog.Int("concurrency", opts.Concurrency),
		slog.Int("max_batch_size", opts.MaxBatchSize))

	return &Gateway{api: api, opts: opts}
}

// MaxBatchSize reports the batch cap the tool surface should enforce.
func (g *Gateway) MaxBatchSize() int { return g.opts.MaxBatchSize }

// BaseURL reports the analyzer endpoint the gateway talks to.
func (g *Gateway) BaseURL() string { return g.api.BaseURL() }

// Analyze classifies a single text. Blank input is rejected here, before any
// network call is made; every other failure is classified from the client
// error so the caller only ever sees an Outcome.
func (g *Gateway) Analyze(ctx context.Context, text string) models.Outcome {
	if strings.TrimSpace(text) == "" {
		return failure(text, models.FailureInvalidInput, "Text cannot be empty")
	}

	requestID := uuid.NewString()
	resp, err := g.api.Predict(ctx, text, requestID)
	if err != nil {
		kind, msg := classifyErr(err)
		slog.Warn("[Gateway] Predict failed",
			slog.String("request_id", requestID),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return failure(text, kind, msg)
	}

	return models.Outcome{Result: &models.AnalysisResult{
		Text:       text,
		Sentiment:  models.Sentiment(resp.Sentiment),
		Confidence: resp.Confidence,
	}}
}

// BatchAnalyze classifies texts concurrently, at most opts.Concurrency in
// flight at once. The returned slice is index-aligned with texts, and one
// failed element never affects the others. When ctx expires mid-batch, every
// element that has not completed comes back as a timeout failure.
func (g *Gateway) BatchAnalyze(ctx context.Context, texts []string) []models.Outcome {
	outcomes := make([]models.Outcome, len(texts))
	if len(texts) == 0 {
		return outcomes
	}

	start := time.Now()
	sem := make(chan struct{}, g.opts.Concurrency)
	var wg sync.WaitGroup

	for i, text := range texts {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Deadline hit with items still queued: fail them in place and
			// wait for the in-flight ones, which abort through the same ctx.
			for j := i; j < len(texts); j++ {
				outcomes[j] = failure(texts[j], models.FailureTimeout, "batch aborted: "+ctx.Err().Error())
			}
			wg.Wait()
			slog.Warn("[Gateway] Batch aborted",
				slog.Int("dispatched", i),
				slog.Int("total", len(texts)),
				slog.Duration("elapsed", time.Since(start)))
			return outcomes
		}

		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = g.Analyze(ctx, text)
		}(i, text)
	}

	wg.Wait()

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	slog.Info("[Gateway] Batch complete",
		slog.Int("total", len(texts)),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)))

	return outcomes
}

// CheckHealth probes the analyzer's health endpoint. It always returns a
// status; an analyzer that is down or misbehaving is reported with
// Reachable=false, never as an error.
func (g *Gateway) CheckHealth(ctx context.Context) models.HealthStatus {
	hctx, cancel := context.WithTimeout(ctx, g.opts.HealthTimeout)
	defer cancel()

	status := models.HealthStatus{BaseURL: g.api.BaseURL()}

	start := time.Now()
	resp, err := g.api.Health(hctx)
	if err != nil {
		status.Error = err.Error()
		slog.Warn("[Gateway] Health check failed", slog.String("error", err.Error()))
		return status
	}

	latency := time.Since(start).Milliseconds()
	status.Reachable = true
	status.LatencyMs = &latency

	slog.Debug("[Gateway] Health check ok",
		slog.String("backend", resp.Backend),
		slog.Int64("latency_ms", latency))

	return status
}
