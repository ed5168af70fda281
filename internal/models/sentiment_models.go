package models

// Sentiment is the binary classification label produced by the analyzer.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

type (
	// PredictRequest is the body for POST /predict on the analyzer service.
	// RequestID is optional and only used for log correlation.
	PredictRequest struct {
		Text      string `json:"text"`
		RequestID string `json:"request_id,omitempty"`
	}

	// PredictResponse is the analyzer's answer for a single text. Confidence
	// is backend-dependent and may be absent.
	PredictResponse struct {
		Sentiment  string   `json:"sentiment"`
		Confidence *float64 `json:"confidence,omitempty"`
	}
)

// APIError is the error body returned by the analyzer on 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body for GET /health on the analyzer service.
type HealthResponse struct {
	Status      string `json:"status"`
	Backend     string `json:"backend"`
	ModelLoaded bool   `json:"model_loaded"`
}
