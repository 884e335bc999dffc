package carrierinfo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/logx"
)

type gauge interface {
	Set(float64)
}

// BreakerConfig holds circuit breaker thresholds.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	OpenFor          time.Duration
	FailureThreshold uint32
	FailureRatio     float64
	MinRequests      uint32
}

// Breaker guards a provider with a circuit breaker and translates provider
// errors into application errors. Caller errors (not found, invalid argument)
// do not count as failures.
type Breaker struct {
	next   Provider
	cb     *gobreaker.CircuitBreaker
	logger logx.Logger
}

// NewBreaker wraps next. state, when not nil, receives 0 closed, 1 half-open, 2 open.
func NewBreaker(next Provider, cfg BreakerConfig, state gauge, logger logx.Logger) *Breaker {
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.Name == "" {
		cfg.Name = "carrier-info"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 10
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			if c.ConsecutiveFailures >= cfg.FailureThreshold {
				return true
			}
			if cfg.FailureRatio > 0 && c.Requests >= cfg.MinRequests {
				return float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureRatio
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if state != nil {
				state.Set(stateValue(to))
			}
			logger.Warn("circuit breaker state changed",
				logx.String("name", name),
				logx.String("from", from.String()),
				logx.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAsFailure(err)
		},
	}
	if state != nil {
		state.Set(0)
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings), logger: logger}
}

// Metrics runs the provider call through the breaker.
func (b *Breaker) Metrics(ctx context.Context, carrierCode, route string) (Metrics, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Metrics(ctx, carrierCode, route)
	})
	if err != nil {
		return Metrics{}, translate(carrierCode, err)
	}
	return res.(Metrics), nil
}

// State returns the current breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func countsAsFailure(err error) bool {
	switch status.Code(err) {
	case codes.NotFound, codes.InvalidArgument, codes.Canceled:
		return false
	default:
		return true
	}
}

func translate(carrierCode string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: carrier info: %w", apperr.ErrUnavailable, err)
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("carrier %s: %w", carrierCode, apperr.ErrNotFound)
	case codes.InvalidArgument:
		return apperr.Validation("code", status.Convert(err).Message())
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("%w: carrier info: %w", apperr.ErrUnavailable, err)
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
