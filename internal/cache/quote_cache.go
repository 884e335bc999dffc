// Package cache keeps rated shipping quotes in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"shipping-allocation-engine/internal/domain"
)

// KeyPrefix prefixes every quote key.
const KeyPrefix = "quote:"

// QuoteCache handles caching of optimization results in Redis.
// A nil client disables caching: reads miss and writes are skipped.
type QuoteCache struct {
	client  *redis.Client
	ttl     time.Duration
	results *prometheus.CounterVec
}

// NewQuoteCache creates a quote cache over client.
func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QuoteCache{client: client, ttl: ttl}
}

// Connect opens a client and pings it. An unreachable server yields a
// cache with nil client and the ping error.
func Connect(ctx context.Context, addr, password string, db int, ttl time.Duration) (*QuoteCache, error) {
	if addr == "" {
		return NewQuoteCache(nil, ttl), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return NewQuoteCache(nil, ttl), fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewQuoteCache(client, ttl), nil
}

// WithResults counts lookups by result label: hit, miss or error.
func (c *QuoteCache) WithResults(v *prometheus.CounterVec) *QuoteCache {
	c.results = v
	return c
}

func (c *QuoteCache) observe(result string) {
	if c.results != nil {
		c.results.WithLabelValues(result).Inc()
	}
}

// Enabled reports whether a client is attached.
func (c *QuoteCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get loads the result stored under key. ok is false on a miss.
func (c *QuoteCache) Get(ctx context.Context, key string) (domain.OptimizationResult, bool, error) {
	if !c.Enabled() {
		return domain.OptimizationResult{}, false, nil
	}

	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.observe("miss")
		return domain.OptimizationResult{}, false, nil
	}
	if err != nil {
		c.observe("error")
		return domain.OptimizationResult{}, false, fmt.Errorf("quote cache get: %w", err)
	}

	var res domain.OptimizationResult
	if err := json.Unmarshal(data, &res); err != nil {
		c.observe("error")
		return domain.OptimizationResult{}, false, fmt.Errorf("quote cache decode: %w", err)
	}
	c.observe("hit")
	return res, true, nil
}

// Set stores res under key for the configured TTL.
func (c *QuoteCache) Set(ctx context.Context, key string, res domain.OptimizationResult) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("quote cache encode: %w", err)
	}
	if err := c.client.Set(ctx, KeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("quote cache set: %w", err)
	}
	return nil
}

// InvalidateAll removes every cached quote and returns the number of keys removed.
func (c *QuoteCache) InvalidateAll(ctx context.Context) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}

	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("quote cache scan: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("quote cache delete: %w", err)
	}
	return len(keys), nil
}

// Close closes the Redis connection.
func (c *QuoteCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
