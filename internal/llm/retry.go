package llm

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"strings"
	"time"
)

// ErrorType classifies an error for retry purposes
type ErrorType int

const (
	// ErrorTypeRetryable indicates the error is transient
	ErrorTypeRetryable ErrorType = iota
	// ErrorTypeNonRetryable indicates the error is permanent
	ErrorTypeNonRetryable
	// ErrorTypeUnknown indicates the error type is unknown (conservative: don't retry)
	ErrorTypeUnknown
)

// RetryConfig holds configuration for retry behavior.
// Disabled by default: a failed remote call is reported, not repeated.
type RetryConfig struct {
	Enabled     bool
	MaxAttempts int
	BackoffBase float64 // in seconds
	BackoffMax  float64 // in seconds
}

// DefaultRetryConfig returns the default (disabled) retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Enabled:     false,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// HTTPStatusError is an interface for errors that carry an HTTP status
type HTTPStatusError interface {
	error
	HTTPStatusCode() int
}

// ClassifyError determines if an error is retryable
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeNonRetryable
	}

	if errors.Is(err, context.Canceled) {
		return ErrorTypeNonRetryable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeRetryable
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrorTypeRetryable
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorTypeRetryable
	}

	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		return classifyHTTPStatus(statusErr.HTTPStatusCode())
	}

	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return ErrorTypeRetryable
	}

	return ErrorTypeUnknown
}

func classifyHTTPStatus(statusCode int) ErrorType {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRetryable
	case statusCode >= 500:
		return ErrorTypeRetryable
	case statusCode >= 400:
		return ErrorTypeNonRetryable
	default:
		return ErrorTypeUnknown
	}
}

// CalculateBackoff returns min(base * 2^(attempt-1), max)
func CalculateBackoff(attempt int, base, max float64) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	backoff := base * math.Pow(2, float64(attempt-1))
	if backoff > max {
		backoff = max
	}
	return time.Duration(backoff * float64(time.Second))
}

// RetryableFunc is a function that can be retried and returns a result
type RetryableFunc[T any] func() (T, error)

// WithRetry executes fn, retrying transient failures with exponential
// backoff when cfg enables it. With retry disabled fn runs exactly
// once.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryableFunc[T]) (T, error) {
	var zero T

	if !cfg.Enabled || cfg.MaxAttempts <= 0 {
		return fn()
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts+1; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ClassifyError(err) != ErrorTypeRetryable {
			return zero, err
		}
		if attempt > cfg.MaxAttempts {
			return zero, err
		}

		backoff := CalculateBackoff(attempt, cfg.BackoffBase, cfg.BackoffMax)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return zero, lastErr
}
