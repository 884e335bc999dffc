package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

type counter interface {
	Inc()
}

// RetryConfig describes RetryingTxRunner backoff.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingTxRunner re-runs a whole transaction when storage fails transiently.
// After the last attempt the error is wrapped with apperr.ErrUnavailable.
type RetryingTxRunner struct {
	next      deliverytx.Runner
	logger    logx.Logger
	retries   counter
	cfg       RetryConfig
	transient func(error) bool
}

// NewRetryingTxRunner wraps next. A nil next returns nil.
func NewRetryingTxRunner(next deliverytx.Runner, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingTxRunner {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingTxRunner{next: next, logger: logger, retries: retries, cfg: cfg, transient: IsTransient}
}

// WithTx runs fn in a transaction, retrying transient failures.
// fn must not keep side effects outside the transaction between attempts.
func (r *RetryingTxRunner) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := r.next.WithTx(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || !r.transient(err) {
			return err
		}
		if attempt == r.cfg.MaxAttempts {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("storage retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			return errors.Join(ctx.Err(), err)
		}
	}
	return fmt.Errorf("%w: %w", apperr.ErrUnavailable, lastErr)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
