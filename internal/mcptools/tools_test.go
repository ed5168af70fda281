package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarity-ml/polarity/internal/gateway"
	"github.com/polarity-ml/polarity/internal/models"
)

type stubAnalyzer struct {
	predict   func(text string) (*models.PredictResponse, error)
	healthErr error
}

func (s *stubAnalyzer) Predict(_ context.Context, text, _ string) (*models.PredictResponse, error) {
	if s.predict != nil {
		return s.predict(text)
	}
	return &models.PredictResponse{Sentiment: "positive"}, nil
}

func (s *stubAnalyzer) Health(context.Context) (*models.HealthResponse, error) {
	if s.healthErr != nil {
		return nil, s.healthErr
	}
	return &models.HealthResponse{Status: "ok", Backend: "distilbert", ModelLoaded: true}, nil
}

func (s *stubAnalyzer) BaseURL() string { return "http://analyzer.test:8000" }

func newTestServer(stub *stubAnalyzer, opts gateway.Options) *Server {
	return NewServer(gateway.New(stub, opts))
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func TestHandleAnalyze(t *testing.T) {
	t.Run("returns the analysis as JSON", func(t *testing.T) {
		confidence := 0.93
		s := newTestServer(&stubAnalyzer{predict: func(string) (*models.PredictResponse, error) {
			return &models.PredictResponse{Sentiment: "positive", Confidence: &confidence}, nil
		}}, gateway.Options{})

		result, err := s.handleAnalyze(context.Background(), callRequest(map[string]any{
			"text": "I love this product!",
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)

		var analysis models.AnalysisResult
		require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &analysis))
		assert.Equal(t, "I love this product!", analysis.Text)
		assert.Equal(t, models.SentimentPositive, analysis.Sentiment)
		require.NotNil(t, analysis.Confidence)
		assert.InDelta(t, 0.93, *analysis.Confidence, 1e-9)
	})

	t.Run("blank text becomes a tool error", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{})

		result, err := s.handleAnalyze(context.Background(), callRequest(map[string]any{
			"text": "   ",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textContent(t, result), "Text cannot be empty")
	})

	t.Run("missing text argument becomes a tool error", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{})

		result, err := s.handleAnalyze(context.Background(), callRequest(map[string]any{}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("analyzer failures become tool errors", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{predict: func(string) (*models.PredictResponse, error) {
			return nil, errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
		}}, gateway.Options{})

		result, err := s.handleAnalyze(context.Background(), callRequest(map[string]any{
			"text": "is anyone there?",
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textContent(t, result), "unreachable")
	})
}

func TestHandleBatchAnalyze(t *testing.T) {
	t.Run("returns outcomes aligned with the input", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{predict: func(text string) (*models.PredictResponse, error) {
			sentiment := "positive"
			if text == "This software is buggy and unreliable." {
				sentiment = "negative"
			}
			return &models.PredictResponse{Sentiment: sentiment}, nil
		}}, gateway.Options{})

		result, err := s.handleBatchAnalyze(context.Background(), callRequest(map[string]any{
			"texts": []any{
				"What a beautiful day!",
				"This software is buggy and unreliable.",
			},
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)

		var outcomes []models.Outcome
		require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &outcomes))
		require.Len(t, outcomes, 2)
		assert.Equal(t, models.SentimentPositive, outcomes[0].Result.Sentiment)
		assert.Equal(t, models.SentimentNegative, outcomes[1].Result.Sentiment)
	})

	t.Run("inlines per-element failures instead of erroring", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{predict: func(text string) (*models.PredictResponse, error) {
			if text == "doomed" {
				return nil, errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
			}
			return &models.PredictResponse{Sentiment: "positive"}, nil
		}}, gateway.Options{})

		result, err := s.handleBatchAnalyze(context.Background(), callRequest(map[string]any{
			"texts": []any{"fine", "doomed"},
		}))

		require.NoError(t, err)
		require.False(t, result.IsError, "per-element failures must not fail the tool call")

		var outcomes []models.Outcome
		require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &outcomes))
		require.Len(t, outcomes, 2)
		assert.True(t, outcomes[0].OK())
		require.NotNil(t, outcomes[1].Failure)
		assert.Equal(t, models.FailureUnreachable, outcomes[1].Failure.Kind)
	})

	t.Run("empty list yields an empty array", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{})

		result, err := s.handleBatchAnalyze(context.Background(), callRequest(map[string]any{
			"texts": []any{},
		}))

		require.NoError(t, err)
		require.False(t, result.IsError)

		var outcomes []models.Outcome
		require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &outcomes))
		assert.Empty(t, outcomes)
	})

	t.Run("rejects oversized batches", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{MaxBatchSize: 3})

		result, err := s.handleBatchAnalyze(context.Background(), callRequest(map[string]any{
			"texts": []any{"a", "b", "c", "d"},
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, "Maximum 3 texts allowed per batch", textContent(t, result))
	})

	t.Run("rejects non-string elements", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{})

		result, err := s.handleBatchAnalyze(context.Background(), callRequest(map[string]any{
			"texts": []any{"fine", 42},
		}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textContent(t, result), "texts[1] is not a string")
	})

	t.Run("rejects a missing texts argument", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{})

		result, err := s.handleBatchAnalyze(context.Background(), callRequest(map[string]any{}))

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textContent(t, result), "texts must be an array of strings")
	})
}

func TestHandleCheckHealth(t *testing.T) {
	t.Run("reports a reachable analyzer", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{}, gateway.Options{})

		result, err := s.handleCheckHealth(context.Background(), mcp.CallToolRequest{})

		require.NoError(t, err)
		require.False(t, result.IsError)

		var status models.HealthStatus
		require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &status))
		assert.True(t, status.Reachable)
		assert.Equal(t, "http://analyzer.test:8000", status.BaseURL)
	})

	t.Run("reports an unreachable analyzer without erroring", func(t *testing.T) {
		s := newTestServer(&stubAnalyzer{
			healthErr: errors.New("dial tcp 127.0.0.1:8000: connect: connection refused"),
		}, gateway.Options{})

		result, err := s.handleCheckHealth(context.Background(), mcp.CallToolRequest{})

		require.NoError(t, err)
		require.False(t, result.IsError, "an unreachable analyzer is a status, not an error")

		var status models.HealthStatus
		require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &status))
		assert.False(t, status.Reachable)
		assert.NotEmpty(t, status.Error)
	})
}

func TestBuild(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, gateway.Options{})

	assert.NotNil(t, s.Build())
}

func TestResources(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, gateway.Options{})

	t.Run("api info interpolates the analyzer base URL", func(t *testing.T) {
		contents, err := s.handleAPIInfo(context.Background(), mcp.ReadResourceRequest{})

		require.NoError(t, err)
		require.Len(t, contents, 1)

		text, ok := contents[0].(mcp.TextResourceContents)
		require.True(t, ok)
		assert.Equal(t, API_INFO_URI, text.URI)
		assert.Equal(t, "text/markdown", text.MIMEType)
		assert.Contains(t, text.Text, "POST /predict")
		assert.Contains(t, text.Text, "http://analyzer.test:8000")
	})

	t.Run("examples resource lists usage scenarios", func(t *testing.T) {
		contents, err := s.handleExamples(context.Background(), mcp.ReadResourceRequest{})

		require.NoError(t, err)
		require.Len(t, contents, 1)

		text, ok := contents[0].(mcp.TextResourceContents)
		require.True(t, ok)
		assert.Equal(t, EXAMPLES_URI, text.URI)
		assert.Contains(t, text.Text, "I love this product!")
		assert.Contains(t, text.Text, "## Use Cases")
	})
}
