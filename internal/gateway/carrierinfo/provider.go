// Package carrierinfo serves carrier performance metrics.
//
// The only provider today is a deterministic simulation; every payload it
// produces carries Simulated = true.
package carrierinfo

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shipping-allocation-engine/internal/catalog"
)

// Metrics is a carrier performance snapshot for an optional lane.
type Metrics struct {
	CarrierCode         string
	CarrierName         string
	Route               string
	AverageCost         float64
	AverageDeliveryDays float64
	OnTimePercentage    float64
	DamageRate          float64
	TotalShipments      int
	Simulated           bool
	AsOf                time.Time
}

// Provider fetches carrier metrics. Errors carry grpc status codes.
type Provider interface {
	Metrics(ctx context.Context, carrierCode, route string) (Metrics, error)
}

// CatalogSource hands out the current catalog snapshot.
type CatalogSource interface {
	Current() *catalog.Catalog
}

// SimulatedProvider derives stable metrics from the carrier code and lane.
type SimulatedProvider struct {
	catalog CatalogSource
	now     func() time.Time
}

// NewSimulatedProvider creates a SimulatedProvider.
func NewSimulatedProvider(src CatalogSource) *SimulatedProvider {
	return &SimulatedProvider{catalog: src, now: func() time.Time { return time.Now().UTC() }}
}

// Metrics returns the simulated metrics of the carrier.
func (p *SimulatedProvider) Metrics(ctx context.Context, carrierCode, route string) (Metrics, error) {
	if err := ctx.Err(); err != nil {
		return Metrics{}, status.FromContextError(err).Err()
	}
	carrier, ok := p.catalog.Current().Carrier(carrierCode)
	if !ok {
		return Metrics{}, status.Errorf(codes.NotFound, "carrier %q not found", carrierCode)
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(carrierCode + "|" + route))
	sum := h.Sum64()

	return Metrics{
		CarrierCode:         carrier.Code,
		CarrierName:         carrier.Name,
		Route:               route,
		AverageCost:         round2(10 + 20*unit(sum, 0)),
		AverageDeliveryDays: round2(2 + 2*unit(sum, 1)),
		OnTimePercentage:    round2(carrier.Reliability * 100),
		DamageRate:          math.Round(0.01*unit(sum, 2)*1e4) / 1e4,
		TotalShipments:      100 + int(1000*unit(sum, 3)),
		Simulated:           true,
		AsOf:                p.now().Truncate(time.Hour),
	}, nil
}

// unit maps the k-th 16-bit lane of sum into [0, 1).
func unit(sum uint64, k uint) float64 {
	return float64((sum>>(16*k))&0xffff) / 65536
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
