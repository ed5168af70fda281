package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polarity-ml/polarity/internal/models"
)

func TestLabelToSentiment(t *testing.T) {
	tests := []struct {
		label string
		want  models.Sentiment
	}{
		{"POSITIVE", models.SentimentPositive},
		{"positive", models.SentimentPositive},
		{"NEGATIVE", models.SentimentNegative},
		{"LABEL_1", models.SentimentNegative},
		{"", models.SentimentNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, labelToSentiment(tt.label), "label %q", tt.label)
	}
}
