package carrierinfo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shipping-allocation-engine/internal/catalog"
)

func seedProvider(t *testing.T) *SimulatedProvider {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	p := NewSimulatedProvider(catalog.NewStaticStore(c))
	p.now = func() time.Time { return time.Date(2025, 1, 8, 10, 42, 0, 0, time.UTC) }
	return p
}

func TestSimulatedProvider_Deterministic(t *testing.T) {
	t.Parallel()

	p := seedProvider(t)
	a, err := p.Metrics(context.Background(), "UPS", "55401-90210")
	require.NoError(t, err)
	b, err := p.Metrics(context.Background(), "UPS", "55401-90210")
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.True(t, a.Simulated)
	require.Equal(t, "United Parcel Service", a.CarrierName)
	require.Equal(t, 96.0, a.OnTimePercentage)
	require.Equal(t, time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC), a.AsOf)
}

func TestSimulatedProvider_Ranges(t *testing.T) {
	t.Parallel()

	p := seedProvider(t)
	for _, code := range []string{"USPS", "UPS", "FEDEX", "DHL", "AMZL"} {
		for _, route := range []string{"", "55401-90210", "10001-60601"} {
			m, err := p.Metrics(context.Background(), code, route)
			require.NoError(t, err)
			require.GreaterOrEqual(t, m.AverageCost, 10.0)
			require.LessOrEqual(t, m.AverageCost, 30.0)
			require.GreaterOrEqual(t, m.AverageDeliveryDays, 2.0)
			require.LessOrEqual(t, m.AverageDeliveryDays, 4.0)
			require.GreaterOrEqual(t, m.DamageRate, 0.0)
			require.LessOrEqual(t, m.DamageRate, 0.01)
			require.GreaterOrEqual(t, m.TotalShipments, 100)
			require.Less(t, m.TotalShipments, 1100)
		}
	}
}

func TestSimulatedProvider_UnknownCarrier(t *testing.T) {
	t.Parallel()

	_, err := seedProvider(t).Metrics(context.Background(), "ZZZ", "")
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestSimulatedProvider_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := seedProvider(t).Metrics(ctx, "UPS", "")
	require.Equal(t, codes.Canceled, status.Code(err))
}
