package services

import (
	"context"
	"errors"
	"math"
	"net"
	"time"

	"google.golang.org/genai"
)

// RetryConfig controls the backoff schedule for transient generation failures.
type RetryConfig struct {
	// MaxAttempts is the total number of calls, the first one included.
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig matches the documented policy: 3 total attempts,
// 2s base delay doubling up to a 10s cap.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  3,
	InitialDelay: 2 * time.Second,
	MaxDelay:     10 * time.Second,
	Multiplier:   2.0,
}

// sleep is swapped out in tests so retries do not actually wait.
var sleep = func(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryGenerate runs fn up to cfg.MaxAttempts times, backing off between
// attempts. Non-retryable errors fail immediately. The returned error is
// always a *GenerationError carrying the attempt count and the last cause.
func retryGenerate(ctx context.Context, cfg RetryConfig, fn func() (string, error)) (string, error) {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", &GenerationError{Attempts: attempt - 1, Err: ctx.Err()}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return "", &GenerationError{Attempts: attempt, Err: err}
		}

		if attempt < cfg.MaxAttempts {
			delay := time.Duration(float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1)))
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
			if err := sleep(ctx, delay); err != nil {
				return "", &GenerationError{Attempts: attempt, Err: err}
			}
		}
	}

	return "", &GenerationError{Attempts: cfg.MaxAttempts, Err: lastErr}
}

// isRetryable reports whether an error is a transient remote failure worth
// another attempt. Configuration errors and client-side mistakes are not.
func isRetryable(err error) bool {
	if errors.Is(err, ErrConfiguration) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}
