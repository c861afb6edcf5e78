// Package remote holds the plumbing shared by outbound clients: a circuit
// breaker per dependency and a call wrapper that bounds every request with a
// timeout and reports failures as domain.ErrRemoteUnavailable.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/domain"
)

const (
	DefaultTimeout = 10 * time.Second

	breakerOpenFor     = 10 * time.Second
	breakerTripAfter   = 3
	breakerHalfOpenMax = 1
)

// NewBreaker trips after three consecutive failures and probes again after ten
// seconds. Calls abandoned by the caller do not count as failures.
func NewBreaker(name string, log zerolog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenMax,
		Timeout:     breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripAfter
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// Call runs fn through cb with its own deadline. Panics inside fn are turned
// into errors. Every failure, including an open breaker, wraps
// domain.ErrRemoteUnavailable.
func Call[T any](ctx context.Context, cb *gobreaker.CircuitBreaker, capability string, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := cb.Execute(func() (res interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		res, err = fn(callCtx)
		if err != nil && errors.Is(ctx.Err(), context.Canceled) {
			err = fmt.Errorf("%w: %w", context.Canceled, err)
		}
		return res, err
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.RemoteCallDuration.WithLabelValues(capability, result).Observe(time.Since(start).Seconds())

	var zero T
	if err != nil {
		return zero, fmt.Errorf("%s: %w: %w", capability, domain.ErrRemoteUnavailable, err)
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%s: %w: unexpected result %T", capability, domain.ErrRemoteUnavailable, out)
	}
	return v, nil
}
