package gateway

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/polarity-ml/polarity/internal/clients"
	"github.com/polarity-ml/polarity/internal/models"
)

// classifyErr maps a failed analyzer call onto a failure kind plus a message
// fit for returning to the caller. Timeouts are checked before connection
// errors so a wrapped "i/o timeout" is never misfiled as unreachable.
func classifyErr(err error) (models.FailureKind, string) {
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) {
		return models.FailureUnknown, statusErr.Detail
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.FailureTimeout, "analyzer request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return models.FailureTimeout, "analyzer request canceled"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.FailureTimeout, "analyzer request timed out"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || errors.Is(err, syscall.ECONNREFUSED) || isConnectionError(err) {
		return models.FailureUnreachable, "analyzer unreachable: " + err.Error()
	}

	return models.FailureUnknown, err.Error()
}

// isConnectionError catches transport errors that arrive with their type
// information erased, e.g. after passing through fmt.Errorf wrapping.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "EOF")
}

func failure(text string, kind models.FailureKind, msg string) models.Outcome {
	return models.Outcome{Failure: &models.Failure{Text: text, Kind: kind, Message: msg}}
}
