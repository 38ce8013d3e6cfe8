package lotto

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
)

// CircuitBreakerLottery wraps a LotteryOperator with a circuit breaker.
// Infrastructure failures (store outages, collaborator errors) count toward
// the breaker; domain errors such as an insufficient tender or an empty draw
// are treated as successful calls so a burst of rejected purchases cannot
// open the breaker.
type CircuitBreakerLottery struct {
	inner   LotteryOperator
	breaker *gobreaker.CircuitBreaker
	logger  Logger
}

var _ LotteryOperator = (*CircuitBreakerLottery)(nil)

// NewCircuitBreakerLottery wraps inner with the given breaker configuration.
// A nil config uses the defaults.
func NewCircuitBreakerLottery(inner LotteryOperator, config *CircuitBreakerConfig, logger Logger) *CircuitBreakerLottery {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}
	if logger == nil {
		logger = &DefaultLogger{}
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= config.MinRequests && failureRatio >= config.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsDomainError(err)
		},
	}

	if config.OnStateChange {
		settings.OnStateChange = func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker %s state changed: %s -> %s", name, from, to)
		}
	}

	return &CircuitBreakerLottery{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Purchase records a ticket sale through the circuit breaker
func (cb *CircuitBreakerLottery) Purchase(ctx context.Context, owner AccountID, tendered uint64, now uint64) (TicketID, error) {
	result, err := cb.breaker.Execute(func() (any, error) {
		return cb.inner.Purchase(ctx, owner, tendered, now)
	})
	if err != nil {
		return 0, cb.mapError(err)
	}
	return result.(TicketID), nil
}

// PurchaseFromCaller records a collaborator-resolved sale through the circuit breaker
func (cb *CircuitBreakerLottery) PurchaseFromCaller(ctx context.Context) (TicketID, error) {
	result, err := cb.breaker.Execute(func() (any, error) {
		return cb.inner.PurchaseFromCaller(ctx)
	})
	if err != nil {
		return 0, cb.mapError(err)
	}
	return result.(TicketID), nil
}

// Sales returns the current round's sale records through the circuit breaker
func (cb *CircuitBreakerLottery) Sales(ctx context.Context) ([]Sale, error) {
	result, err := cb.breaker.Execute(func() (any, error) {
		return cb.inner.Sales(ctx)
	})
	if err != nil {
		return nil, cb.mapError(err)
	}
	return result.([]Sale), nil
}

// Draw selects the winning sale through the circuit breaker
func (cb *CircuitBreakerLottery) Draw(ctx context.Context) (Sale, error) {
	result, err := cb.breaker.Execute(func() (any, error) {
		return cb.inner.Draw(ctx)
	})
	if err != nil {
		return Sale{}, cb.mapError(err)
	}
	return result.(Sale), nil
}

// State returns the current circuit breaker state
func (cb *CircuitBreakerLottery) State() gobreaker.State { return cb.breaker.State() }

// Counts returns the current circuit breaker counts
func (cb *CircuitBreakerLottery) Counts() gobreaker.Counts { return cb.breaker.Counts() }

// mapError translates breaker rejections into the package sentinel
func (cb *CircuitBreakerLottery) mapError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		cb.logger.Debug("Operation rejected by circuit breaker: %v", err)
		return fmt.Errorf("%w: %v", ErrCircuitBreakerOpen, err)
	}
	return err
}
