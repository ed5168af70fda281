package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/polarity-ml/polarity/internal/models"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// VADER is a lexicon-based classifier with no model artifact. It is the
// offline alternative to the DistilBERT backend.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Name() string { return BackendVADER }

func (v *VADER) Predict(ctx context.Context, text string) (Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	scores := v.analyzer.PolarityScores(markdownToPlain(text))

	// The compound score is signed; its magnitude doubles as the confidence
	// for the binary label.
	pred := Prediction{Sentiment: models.SentimentPositive, Confidence: scores.Compound}
	if scores.Compound < 0 {
		pred.Sentiment = models.SentimentNegative
		pred.Confidence = -scores.Compound
	}
	return pred, nil
}

// markdownToPlain strips links, renders the markdown and drops the resulting
// tags so formatting noise does not skew the lexicon scores.
func markdownToPlain(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	input = bareURLPattern.ReplaceAllString(input, "")

	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(rendered), " ")

	return strings.Join(strings.Fields(plain), " ")
}
