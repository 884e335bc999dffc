// Package shipping serves shipping quotes from the rating engine through the quote cache.
package shipping

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// Service rates orders, reusing cached quotes of the same catalog version and day.
type Service struct {
	engine rater
	cache  quoteCache
	logger logx.Logger
}

// NewService creates a shipping Service. A nil cache disables caching.
func NewService(engine rater, cache quoteCache, logger logx.Logger) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{engine: engine, cache: cache, logger: logger}
}

// RateOptimalShipping returns the ranked options for the order.
// Cache failures are logged and never fail the call.
func (s *Service) RateOptimalShipping(
	ctx context.Context,
	o domain.OrderContext,
	u domain.UrgencyBand,
	c domain.Criterion,
) (domain.OptimizationResult, error) {
	u, c = u.OrDefault(), c.OrDefault()
	snap := s.engine.Snapshot()
	if s.cache == nil {
		return s.engine.Rate(ctx, snap, o, u, c)
	}

	key, err := QuoteKey(snap.Version(), snap.Day(), o, u, c)
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	if res, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("quote cache read failed", logx.String("key", key), logx.Err(err))
	} else if ok {
		return res, nil
	}

	res, err := s.engine.Rate(ctx, snap, o, u, c)
	if err != nil {
		return domain.OptimizationResult{}, err
	}
	if err := s.cache.Set(ctx, key, res); err != nil {
		s.logger.Warn("quote cache write failed", logx.String("key", key), logx.Err(err))
	}
	return res, nil
}

type quoteInput struct {
	Order     domain.OrderContext `json:"order"`
	Urgency   domain.UrgencyBand  `json:"urgency"`
	Criterion domain.Criterion    `json:"criterion"`
}

// QuoteKey derives the cache key of a quote request.
func QuoteKey(version, day string, o domain.OrderContext, u domain.UrgencyBand, c domain.Criterion) (string, error) {
	raw, err := json.Marshal(quoteInput{Order: o, Urgency: u, Criterion: c})
	if err != nil {
		return "", fmt.Errorf("quote key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return version + ":" + day + ":" + hex.EncodeToString(sum[:12]), nil
}
