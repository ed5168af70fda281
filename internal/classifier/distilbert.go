package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/polarity-ml/polarity/internal/models"
)

// ModelName is the pretrained checkpoint the analyzer serves. Its internals
// are opaque to this repository; only the positive/negative labels matter.
const ModelName = "distilbert-base-uncased-finetuned-sst-2-english"

const (
	downloadRetries = 3
	downloadBackoff = 5 * time.Second
)

// DistilBERT runs the SST-2 fine-tuned DistilBERT checkpoint through an ONNX
// runtime session.
type DistilBERT struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline

	// the tokenizer is not safe for concurrent use, runs are serialized
	mu sync.Mutex
}

// NewDistilBERT downloads the model into modelDir when it is not already
// present and prepares an inference pipeline.
func NewDistilBERT(modelDir string) (*DistilBERT, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}

	modelPath, err := ensureModel(modelDir)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("initialize onnx session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("initialize classification pipeline: %w", err)
	}

	slog.Info("[DistilBERT] Pipeline ready", slog.String("model_path", modelPath))

	return &DistilBERT{session: session, pipeline: pipeline}, nil
}

func ensureModel(modelDir string) (string, error) {
	existing := filepath.Join(modelDir, ModelName)
	if _, err := os.Stat(existing); err == nil {
		slog.Info("[DistilBERT] Using existing model", slog.String("path", existing))
		return existing, nil
	}

	slog.Info("[DistilBERT] Model not found, downloading...",
		slog.String("model", ModelName))

	var lastErr error
	backoff := downloadBackoff
	for attempt := 1; attempt <= downloadRetries; attempt++ {
		modelPath, err := hugot.DownloadModel(ModelName, modelDir, hugot.NewDownloadOptions())
		if err == nil {
			slog.Info("[DistilBERT] Model downloaded successfully",
				slog.String("path", modelPath))
			return modelPath, nil
		}

		lastErr = err
		slog.Warn("[DistilBERT] Model download failed, will retry",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		time.Sleep(backoff)
		backoff *= 2
	}

	return "", fmt.Errorf("download model %s: %w", ModelName, lastErr)
}

func (d *DistilBERT) Name() string { return BackendDistilBERT }

func (d *DistilBERT) Predict(ctx context.Context, text string) (Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	d.mu.Lock()
	output, err := d.pipeline.RunPipeline([]string{text})
	d.mu.Unlock()
	if err != nil {
		return Prediction{}, fmt.Errorf("run classification pipeline: %w", err)
	}

	raw := output.GetOutput()
	if len(raw) == 0 {
		return Prediction{}, errors.New("empty pipeline output")
	}
	scores, ok := raw[0].([]pipelines.ClassificationOutput)
	if !ok || len(scores) == 0 {
		return Prediction{}, errors.New("unexpected pipeline output format")
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return Prediction{
		Sentiment:  labelToSentiment(best.Label),
		Confidence: float64(best.Score),
	}, nil
}

// labelToSentiment collapses the checkpoint's POSITIVE/NEGATIVE labels onto
// the wire enum. Anything that is not positive is treated as negative.
func labelToSentiment(label string) models.Sentiment {
	if strings.ToLower(label) == "positive" {
		return models.SentimentPositive
	}
	return models.SentimentNegative
}

// Close releases the ONNX session.
func (d *DistilBERT) Close() error {
	return d.session.Destroy()
}
