package models

import "fmt"

// FailureKind categorizes why an analysis could not produce a result.
type FailureKind string

const (
	FailureTimeout      FailureKind = "timeout"
	FailureUnreachable  FailureKind = "unreachable"
	FailureInvalidInput FailureKind = "invalid_input"
	FailureUnknown      FailureKind = "unknown"
)

// AnalysisResult is a successful sentiment classification for one text.
type AnalysisResult struct {
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence *float64  `json:"confidence,omitempty"`
}

// Failure records why a single text could not be analyzed. It carries the
// offending text so callers can decide whether that item is worth retrying.
type Failure struct {
	Text    string      `json:"text"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Outcome holds exactly one of Result or Failure. Batch responses are slices
// of Outcome, index-aligned with the input texts.
type Outcome struct {
	Result  *AnalysisResult `json:"result,omitempty"`
	Failure *Failure        `json:"failure,omitempty"`
}

// OK reports whether the outcome carries a successful result.
func (o Outcome) OK() bool {
	return o.Failure == nil && o.Result != nil
}

// HealthStatus describes the reachability of the analyzer service. An
// unreachable analyzer is a reportable state, not an error.
type HealthStatus struct {
	Reachable bool   `json:"reachable"`
	LatencyMs *int64 `json:"latency_ms,omitempty"`
	BaseURL   string `json:"base_url"`
	Error     string `json:"error,omitempty"`
}
