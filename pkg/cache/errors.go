package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a result backend that could not be reached, such as a
// Redis server given with --redis that does not answer PING.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a backend failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err so [RetryWithBackoff] tries again. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff schedule for connecting to a remote backend. Tests shorten
// retryDelay.
var (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or retryAttempts calls have failed. The delay doubles after each
// failure. NewRedisCache uses it for the initial PING so a Redis server that
// is still starting does not turn a bench run into a cache-less one.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
