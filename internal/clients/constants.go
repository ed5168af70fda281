package clients

import "time"

const (
	DEFAULT_BASE_URL = "http://localhost:8000"
	DEFAULT_TIMEOUT  = 30 * time.Second
	HEALTH_TIMEOUT   = 10 * time.Second
	USER_AGENT       = "polarity-gateway/1.0 (+https://github.com/polarity-ml/polarity)"
)
