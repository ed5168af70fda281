package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polarity-ml/polarity/internal/classifier"
	"github.com/polarity-ml/polarity/internal/models"
)

// Handler serves the analyzer's HTTP surface on top of a classifier backend.
type Handler struct {
	classifier classifier.Classifier
}

func NewHandler(c classifier.Classifier) *Handler {
	return &Handler{classifier: c}
}

// Predict handles POST /predict.
func (h *Handler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIError{Detail: "Invalid request body."})
		return
	}

	pred, err := h.classifier.Predict(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, classifier.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, models.APIError{Detail: "Text input is required."})
			return
		}

		slog.Error("[Analyzer] Prediction failed",
			slog.String("request_id", req.RequestID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, models.APIError{Detail: "Sentiment analysis failed."})
		return
	}

	slog.Debug("[Analyzer] Prediction served",
		slog.String("request_id", req.RequestID),
		slog.String("sentiment", string(pred.Sentiment)))

	confidence := pred.Confidence
	c.JSON(http.StatusOK, models.PredictResponse{
		Sentiment:  string(pred.Sentiment),
		Confidence: &confidence,
	})
}

// Health handles GET /health. Liveness only, no inference.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:      "ok",
		Backend:     h.classifier.Name(),
		ModelLoaded: true,
	})
}
