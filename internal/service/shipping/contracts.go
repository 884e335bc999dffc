//go:generate mockgen -source=contracts.go -destination=shipping_mocks_test.go -package=shipping_test

package shipping

import (
	"context"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/service/rating"
)

type rater interface {
	Snapshot() rating.Snapshot
	Rate(ctx context.Context, snap rating.Snapshot, o domain.OrderContext, u domain.UrgencyBand, c domain.Criterion) (domain.OptimizationResult, error)
}

type quoteCache interface {
	Get(ctx context.Context, key string) (domain.OptimizationResult, bool, error)
	Set(ctx context.Context, key string, res domain.OptimizationResult) error
}
