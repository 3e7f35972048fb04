package http

import (
	"go.uber.org/zap"

	"weather-search/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called immediately after receiving an error response or a transport failure
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error, retryCount, maxRetries int)
}

// ZapLogger writes outbound traffic to pkg/log. Bodies are only logged at debug level.
type ZapLogger struct {
	Name string
}

var _ HTTPLogger = (*ZapLogger)(nil)

func (l *ZapLogger) LogRequest(method, url string, _ map[string]string, body string) {
	log.Debug("outbound request",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("body", body))
}

func (l *ZapLogger) LogResponseSuccess(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64) {
	log.Debug("outbound response",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Int("response_size", len(responseBody)))
}

func (l *ZapLogger) LogResponseError(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("outbound request failed",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("response", truncate(responseBody, 512)),
		zap.Error(err))
}

func (l *ZapLogger) LogRequestRetry(method, url string, _ map[string]string, _ string, httpStatus int, _ string, latency int64, err error, retryCount, maxRetries int) {
	log.Info("retrying outbound request",
		zap.String("client", l.Name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}

func truncate(value string, size int) string {
	if len(value) <= size {
		return value
	}
	return value[:size] + "..."
}
