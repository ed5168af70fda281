package classifier

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/polarity-ml/polarity/internal/models"
)

// Backend names accepted by FromEnv.
const (
	BackendDistilBERT = "distilbert"
	BackendVADER      = "vader"
)

// ErrEmptyText is returned when the input text is empty or whitespace only.
var ErrEmptyText = errors.New("text input is required")

// Prediction is a single classification produced by a backend.
type Prediction struct {
	Sentiment  models.Sentiment
	Confidence float64
}

// Classifier turns a text into a binary sentiment label. Inference is
// read-only; implementations must be safe for concurrent use.
type Classifier interface {
	Name() string
	Predict(ctx context.Context, text string) (Prediction, error)
}

// FromEnv builds the classifier selected by SENTIMENT_BACKEND. The DistilBERT
// backend is the default; VADER needs no model artifact and works offline.
func FromEnv() (Classifier, error) {
	backend := os.Getenv("SENTIMENT_BACKEND")
	if backend == "" {
		backend = BackendDistilBERT
	}

	switch backend {
	case BackendDistilBERT:
		modelDir := os.Getenv("MODEL_DIR")
		if modelDir == "" {
			modelDir = "./models"
		}
		return NewDistilBERT(modelDir)
	case BackendVADER:
		return NewVADER(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", backend)
	}
}
