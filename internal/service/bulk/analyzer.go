// Package bulk rates batches of orders concurrently and aggregates the outcome.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// Defaults applied by NewAnalyzer.
const (
	DefaultParallelism = 8
	DefaultMaxOrders   = 1000
)

// Rater ranks shipping options for one order.
type Rater interface {
	RateOptimalShipping(ctx context.Context, o domain.OrderContext, u domain.UrgencyBand, c domain.Criterion) (domain.OptimizationResult, error)
}

type observer interface {
	Observe(float64)
}

// Analyzer runs the rater over batches.
type Analyzer struct {
	rater       Rater
	parallelism int
	maxOrders   int
	duration    observer
	logger      logx.Logger
}

// NewAnalyzer creates an Analyzer. duration may be nil.
func NewAnalyzer(r Rater, parallelism, maxOrders int, duration observer, logger logx.Logger) *Analyzer {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	if maxOrders <= 0 {
		maxOrders = DefaultMaxOrders
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Analyzer{
		rater:       r,
		parallelism: parallelism,
		maxOrders:   maxOrders,
		duration:    duration,
		logger:      logger,
	}
}

// AnalyzeBatch rates every order with at most parallelism calls in flight.
// Results keep the input order. The first failing order aborts the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, orders []domain.BatchOrder) (domain.BatchResult, error) {
	if len(orders) == 0 {
		return domain.BatchResult{}, apperr.Validation("orders", "at least one order is required")
	}
	if len(orders) > a.maxOrders {
		return domain.BatchResult{}, apperr.Validation("orders", fmt.Sprintf("at most %d orders per batch", a.maxOrders))
	}

	started := time.Now()
	results := make([]domain.OrderAnalysis, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i, bo := range orders {
		g.Go(func() error {
			res, err := a.rater.RateOptimalShipping(gctx, bo.Order, bo.Urgency, bo.Criterion)
			if err != nil {
				return orderError(i, err)
			}
			results[i] = domain.OrderAnalysis{OrderID: bo.Order.OrderID, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.BatchResult{}, err
	}

	out := domain.BatchResult{Orders: results, Summary: Summarize(results)}
	if a.duration != nil {
		a.duration.Observe(time.Since(started).Seconds())
	}
	a.logger.Debug("batch analyzed",
		logx.Int("orders", out.Summary.TotalOrders),
		logx.Float64("total_savings", out.Summary.TotalSavings),
		logx.Duration("took", time.Since(started)),
	)
	return out, nil
}

// orderError prefixes validation fields with the order position.
func orderError(i int, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return apperr.Validation(fmt.Sprintf("orders[%d].%s", i, ve.Field), ve.Reason)
	}
	return fmt.Errorf("orders[%d]: %w", i, err)
}

// Summarize aggregates per-order results. AverageDeliveryDays is taken over
// orders that have a recommendation.
func Summarize(results []domain.OrderAnalysis) domain.BatchSummary {
	s := domain.BatchSummary{TotalOrders: len(results)}
	var days, recommended int
	for _, r := range results {
		s.TotalSavings += r.Result.Analysis.PotentialSavings
		top := r.Result.Recommended
		if top == nil {
			continue
		}
		recommended++
		days += top.TransitDays
		if top.FreeShippingApplied {
			s.FreeShippingApplied++
		}
	}
	s.TotalSavings = math.Round(s.TotalSavings*100) / 100
	if recommended > 0 {
		s.AverageDeliveryDays = math.Round(float64(days)/float64(recommended)*100) / 100
	}
	return s
}
