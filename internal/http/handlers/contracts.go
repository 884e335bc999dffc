package handlers

import (
	"context"

	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/gateway/carrierinfo"
)

type shippingUsecase interface {
	RateOptimalShipping(ctx context.Context, o domain.OrderContext, u domain.UrgencyBand, c domain.Criterion) (domain.OptimizationResult, error)
}

type batchUsecase interface {
	AnalyzeBatch(ctx context.Context, orders []domain.BatchOrder) (domain.BatchResult, error)
}

type zoneUsecase interface {
	CheckCoverage(ctx context.Context, postalCode string, zoneType *domain.ZoneType, allowFallback bool) (domain.CoverageVerdict, error)
	List(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error)
	Create(ctx context.Context, z *domain.Zone) error
}

type deliveryUsecase interface {
	Create(ctx context.Context, req domain.DeliveryRequest) (domain.Delivery, error)
	UpdateStatus(ctx context.Context, u domain.StatusUpdate) (domain.StatusChange, error)
	Get(ctx context.Context, id int64) (domain.Delivery, error)
	List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, domain.DeliveryStats, error)
}

type driverUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, domain.DriverStats, error)
	Create(ctx context.Context, d *domain.Driver) error
	UpdateStatus(ctx context.Context, u domain.DriverStatusUpdate) (domain.Driver, error)
}

type routeUsecase interface {
	OptimizeRoute(ctx context.Context, plan domain.RoutePlan) (domain.Route, error)
	CompleteStop(ctx context.Context, c domain.StopCompletion) (domain.Route, error)
	Get(ctx context.Context, id int64) (domain.Route, error)
	List(ctx context.Context, f domain.RouteFilter) ([]domain.Route, error)
}

type catalogStore interface {
	Current() *catalog.Catalog
	Reload() (*catalog.Catalog, error)
}

type quoteInvalidator interface {
	InvalidateAll(ctx context.Context) (int, error)
}

type metricsProvider interface {
	Metrics(ctx context.Context, carrierCode, route string) (carrierinfo.Metrics, error)
}
