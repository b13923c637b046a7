package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingTransport logs every round-trip with method, path, status and
// duration, at a level matching the outcome
type loggingTransport struct {
	next   http.RoundTripper
	logger *zap.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *zap.Logger) http.RoundTripper {
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("duration", duration),
	}

	if err != nil {
		t.logger.Error("request transport error", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields, zap.Int("status", resp.StatusCode))

	status := resp.StatusCode
	if status >= 500 {
		t.logger.Error("request completed with server error", fields...)
	} else if status >= 400 {
		t.logger.Warn("request completed with client error", fields...)
	} else {
		t.logger.Debug("request completed", fields...)
	}

	return resp, err
}
