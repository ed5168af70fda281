package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/polarity-ml/polarity/internal/models"
)

// StatusError is returned when the analyzer answers with a non-2xx status.
// Detail carries the upstream message when one could be parsed.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analyzer returned status %d: %s", e.StatusCode, e.Detail)
}

// AnalyzerClient is the HTTP client for the sentiment analyzer service. The
// gateway owns exactly one instance; the http.Client is held explicitly so
// tests can point it at a stub server instead of a shared global session.
type AnalyzerClient struct {
	baseURL string
	client  *http.Client
}

func NewAnalyzerClient(baseURL string, timeout time.Duration) *AnalyzerClient {
	slog.Info("[AnalyzerClient] Initializing client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout))

	return &AnalyzerClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the analyzer endpoint this client talks to.
func (c *AnalyzerClient) BaseURL() string { return c.baseURL }

// Predict classifies a single text. The request ID is forwarded for log
// correlation on the analyzer side.
func (c *AnalyzerClient) Predict(ctx context.Context, text, requestID string) (*models.PredictResponse, error) {
	start := time.Now()

	var result models.PredictResponse
	input := models.PredictRequest{Text: text, RequestID: requestID}
	if err := c.postJSON(ctx, "/predict", input, &result); err != nil {
		return nil, err
	}

	slog.Debug("[AnalyzerClient] Prediction received",
		slog.String("request_id", requestID),
		slog.Duration("elapsed", time.Since(start)))

	return &result, nil
}

// Health probes the analyzer's liveness endpoint.
func (c *AnalyzerClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: upstreamDetail(respBody)}
	}

	var result models.HealthResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// helper for posting JSON to the analyzer
func (c *AnalyzerClient) postJSON(ctx context.Context, path string, input any, output any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Detail: upstreamDetail(respBody)}
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// upstreamDetail extracts the analyzer's error detail, falling back to a
// truncated raw body.
func upstreamDetail(respBody []byte) string {
	var apiErr models.APIError
	if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Detail != "" {
		return apiErr.Detail
	}

	raw := string(respBody)
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return raw
}
