package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id so backend logs can be correlated.
const RequestIDHeader = "X-Request-ID"

const defaultSlowThreshold = 2 * time.Second

// loggingTransport logs every round trip with timing.
// Slow requests are logged at WARN, failures at ERROR, the rest at DEBUG.
type loggingTransport struct {
	inner  http.RoundTripper
	logger *slog.Logger
	slow   time.Duration
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := t.inner.RoundTrip(req)
	duration := time.Since(start)

	attrs := []any{
		"method", req.Method,
		"url", req.URL.Redacted(),
		"request_id", id,
		"duration_ms", duration.Milliseconds(),
	}

	switch {
	case err != nil:
		attrs = append(attrs, "error", err.Error())
		t.logger.Error("request failed", attrs...)
	case t.slow > 0 && duration > t.slow:
		attrs = append(attrs, "status", resp.StatusCode)
		t.logger.Warn("slow request", attrs...)
	default:
		attrs = append(attrs, "status", resp.StatusCode)
		t.logger.Debug("request completed", attrs...)
	}

	return resp, err
}
