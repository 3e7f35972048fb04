package http

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrCircuitOpen is returned while the client's circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("circuit breaker open")
	// ErrDecodeResponse wraps failures decoding a 2xx body into the success type.
	ErrDecodeResponse = errors.New("failed to decode response")
)

// BackoffConfig controls exponential backoff between attempts.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// CircuitBreakerConfig configures the breaker guarding a client.
type CircuitBreakerConfig struct {
	// ConsecutiveFailures opens the breaker once reached.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of probes allowed while half open.
	HalfOpenRequests uint32
}

type attemptResult struct {
	successResp any
	errorResp   any
	status      int
	body        string
}

func newCircuitBreaker(name string, cfg CircuitBreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isRetryable(err)
		},
	})
}

// doRequestWithBackoff runs doRequest through the rate limiter and circuit breaker, retrying transport
// failures, 429 and 5xx answers with exponential backoff.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if backoff == nil {
		backoff = hc.backoff
	}
	maxRetries := 0
	if backoff != nil && backoff.MaxRetries > 0 {
		maxRetries = backoff.MaxRetries
	}

	requestURL := hc.buildURL(path)
	bodyLog := describeBody(body)

	for attempt := 0; ; attempt++ {
		if hc.limiter != nil {
			if err := hc.limiter.Wait(ctx); err != nil {
				return nil, nil, 0, err
			}
		}

		if hc.logger != nil {
			hc.logger.LogRequest(method, requestURL, headers, bodyLog)
		}

		start := time.Now()
		result, err := hc.executeAttempt(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		latency := time.Since(start).Milliseconds()

		if err == nil {
			if hc.logger != nil {
				hc.logger.LogResponseSuccess(method, requestURL, headers, bodyLog, result.status, result.body, latency)
			}
			return result.successResp, nil, result.status, nil
		}

		if attempt >= maxRetries || !isRetryable(err) || ctx.Err() != nil {
			if hc.logger != nil {
				hc.logger.LogResponseError(method, requestURL, headers, bodyLog, result.status, result.body, latency, err)
			}
			return nil, result.errorResp, result.status, err
		}

		if hc.logger != nil {
			hc.logger.LogRequestRetry(method, requestURL, headers, bodyLog, result.status, result.body, latency, err, attempt+1, maxRetries)
		}

		timer := time.NewTimer(backoffDelay(backoff, attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, result.errorResp, result.status, ctx.Err()
		case <-timer.C:
		}
	}
}

func (hc *Client) executeAttempt(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (attemptResult, error) {
	run := func() (attemptResult, error) {
		success, errResp, status, rawBody, err := hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		return attemptResult{successResp: success, errorResp: errResp, status: status, body: rawBody}, err
	}

	if hc.breaker == nil {
		return run()
	}

	var result attemptResult
	_, err := hc.breaker.Execute(func() (interface{}, error) {
		var runErr error
		result, runErr = run()
		return nil, runErr
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return result, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}
	return result, err
}

// isRetryable reports whether err is a transport failure or a 429/5xx answer
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrCircuitOpen) || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return !errors.Is(err, ErrDecodeResponse)
}

func backoffDelay(backoff *BackoffConfig, attempt int) time.Duration {
	initial := 100 * time.Millisecond
	if backoff != nil && backoff.InitialInterval > 0 {
		initial = backoff.InitialInterval
	}
	delay := time.Duration(float64(initial) * math.Pow(2, float64(attempt)))
	if backoff != nil && backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
		delay = backoff.MaxInterval
	}
	return delay
}

func describeBody(body any) string {
	switch v := body.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
