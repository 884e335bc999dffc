//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"shipping-allocation-engine/internal/cache"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/metrics"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestQuoteCache_RoundTripAndInvalidate(t *testing.T) {
	addr := startRedis(t)
	ctx := context.Background()

	c, err := cache.Connect(ctx, addr, "", 0, time.Minute)
	require.NoError(t, err)
	require.True(t, c.Enabled())
	results := metrics.NewQuoteCacheResultsTotal()
	c.WithResults(results)
	t.Cleanup(func() { _ = c.Close() })

	want := domain.OptimizationResult{
		Recommended: &domain.ShippingOption{ServiceCode: "AMZL_STD", FinalCost: 12.75, TransitDays: 3},
		Options:     []domain.ShippingOption{{ServiceCode: "AMZL_STD", FinalCost: 12.75, TransitDays: 3}},
		Analysis:    domain.Analysis{TotalOptions: 1, AverageCost: 12.75, Criterion: domain.CriterionCostEffective, Distance: 1000},
	}

	_, ok, err := c.Get(ctx, "v1:2025-01-08:abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "v1:2025-01-08:abc", want))
	got, ok, err := c.Get(ctx, "v1:2025-01-08:abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	n, err := c.InvalidateAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, ok, err = c.Get(ctx, "v1:2025-01-08:abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, 2.0, testutil.ToFloat64(results.WithLabelValues("miss")))
	require.Equal(t, 1.0, testutil.ToFloat64(results.WithLabelValues("hit")))
}
