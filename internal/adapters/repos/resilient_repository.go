package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/architeacher/inventory/internal/config"
	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/ports"
	"github.com/architeacher/inventory/pkg/circuitbreaker"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/cenkalti/backoff/v5"
)

type (
	// ResilientRepository retries failed store calls with exponential backoff and
	// stops calling a store that keeps failing through a circuit breaker.
	ResilientRepository struct {
		base    ports.DeviceRepository
		loads   *circuitbreaker.CircuitBreaker[[]model.Device]
		saves   *circuitbreaker.CircuitBreaker[struct{}]
		backoff config.Backoff
		logger  logger.Logger
	}
)

func NewResilientRepository(
	base ports.DeviceRepository,
	breaker circuitbreaker.Config,
	retry config.Backoff,
	log logger.Logger,
) *ResilientRepository {
	breaker.IsSuccessful = isBreakerSuccess
	breaker.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn().
			Str("breaker", name).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("store circuit breaker changed state")
	}

	loadBreaker := breaker
	loadBreaker.Name = breaker.Name + ".load"

	saveBreaker := breaker
	saveBreaker.Name = breaker.Name + ".save"

	return &ResilientRepository{
		base:    base,
		loads:   circuitbreaker.New[[]model.Device](loadBreaker),
		saves:   circuitbreaker.New[struct{}](saveBreaker),
		backoff: retry,
		logger:  log,
	}
}

func (r *ResilientRepository) LoadAll(ctx context.Context) ([]model.Device, error) {
	return retry(ctx, r, "load", func() ([]model.Device, error) {
		return circuitbreaker.Execute(r.loads, func() ([]model.Device, error) {
			return r.base.LoadAll(ctx)
		})
	})
}

func (r *ResilientRepository) SaveAll(ctx context.Context, devices []model.Device) error {
	_, err := retry(ctx, r, "save", func() (struct{}, error) {
		return circuitbreaker.Execute(r.saves, func() (struct{}, error) {
			return struct{}{}, r.base.SaveAll(ctx, devices)
		})
	})

	return err
}

// Ping delegates to the wrapped repository when it supports health checks.
func (r *ResilientRepository) Ping(ctx context.Context) error {
	if checker, ok := r.base.(ports.StoreHealthChecker); ok {
		return checker.Ping(ctx)
	}

	return nil
}

func retry[T any](ctx context.Context, r *ResilientRepository, operation string, call func() (T, error)) (T, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = r.backoff.BaseDelay
	expBackoff.Multiplier = r.backoff.Multiplier
	expBackoff.RandomizationFactor = r.backoff.Jitter
	expBackoff.MaxInterval = r.backoff.MaxDelay

	attempt := 0

	result, err := backoff.Retry(
		ctx,
		func() (T, error) {
			attempt++

			result, err := call()
			if err == nil || !isRetryable(err) {
				if err != nil {
					return result, backoff.Permanent(err)
				}

				return result, nil
			}

			r.logger.Warn().
				Err(err).
				Str("operation", operation).
				Int("attempt", attempt).
				Msg("store call failed")

			return result, err
		},
		backoff.WithMaxTries(r.backoff.MaxRetries+1),
		backoff.WithBackOff(expBackoff),
	)
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			return result, fmt.Errorf("%w: %s: %w", model.ErrStoreUnavailable, operation, err)
		}

		return result, err
	}

	return result, nil
}

func isRetryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case circuitbreaker.IsRejection(err):
		return false
	case errors.Is(err, model.ErrStoreNotFound), errors.Is(err, model.ErrMalformedRecord):
		return false
	default:
		return true
	}
}

// isBreakerSuccess keeps caller cancellations from tripping the breaker.
func isBreakerSuccess(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}
