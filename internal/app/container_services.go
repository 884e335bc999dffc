package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"shipping-allocation-engine/internal/cache"
	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/config"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/gateway/carrierinfo"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/ports/deliverytx"
	"shipping-allocation-engine/internal/repository"
	"shipping-allocation-engine/internal/service/bulk"
	"shipping-allocation-engine/internal/service/delivery"
	"shipping-allocation-engine/internal/service/dispatch"
	"shipping-allocation-engine/internal/service/drivers"
	"shipping-allocation-engine/internal/service/events"
	"shipping-allocation-engine/internal/service/rating"
	"shipping-allocation-engine/internal/service/shipping"
	"shipping-allocation-engine/internal/service/zones"
	"shipping-allocation-engine/internal/transport/kafka"
)

// deliveryStore runs delivery transactions through the retrying runner.
type deliveryStore struct {
	*repository.DeliveryRepo
	tx *repository.RetryingTxRunner
}

func (s deliveryStore) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	return s.tx.WithTx(ctx, fn)
}

// routeStore runs route transactions through the retrying runner.
type routeStore struct {
	*repository.RouteRepo
	tx *repository.RetryingTxRunner
}

func (s routeStore) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	return s.tx.WithTx(ctx, fn)
}

type quoteCacheIn struct {
	dig.In

	Ctx     context.Context
	Cfg     *config.Config
	Logger  logx.Logger
	Results *prometheus.CounterVec `name:"quote_cache_results_total"`
}

type analyzerIn struct {
	dig.In

	Cfg      *config.Config
	Rates    *shipping.Service
	Logger   logx.Logger
	Duration prometheus.Histogram `name:"bulk_analysis_duration_seconds"`
}

type carrierInfoIn struct {
	dig.In

	Cfg     *config.Config
	Store   *catalog.Store
	Logger  logx.Logger
	Retries prometheus.Counter `name:"carrier_info_retries_total"`
	State   prometheus.Gauge   `name:"carrier_info_breaker_state"`
}

// statusPublisher keeps a disabled producer out of the delivery service.
func statusPublisher(p *kafka.Producer) delivery.Publisher {
	if p == nil {
		return nil
	}
	return p
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		provideEngine,
		provideQuoteCache,
		func(engine *rating.Engine, quotes *cache.QuoteCache, logger logx.Logger) *shipping.Service {
			return shipping.NewService(engine, quotes, logger)
		},
		func(in analyzerIn) *bulk.Analyzer {
			return bulk.NewAnalyzer(in.Rates, in.Cfg.Bulk.Parallelism, in.Cfg.Bulk.MaxOrders, in.Duration, in.Logger)
		},
		func(repo *repository.ZoneRepo, cfg *config.Config, timeout time.Duration, logger logx.Logger) *zones.Service {
			return zones.NewService(repo, fallbackTier(cfg.Zones), timeout, logger)
		},
		provideProducer,
		func(
			repo *repository.DeliveryRepo,
			tx *repository.RetryingTxRunner,
			producer *kafka.Producer,
			timeout time.Duration,
			logger logx.Logger,
		) *delivery.Service {
			return delivery.NewDeliveryService(deliveryStore{DeliveryRepo: repo, tx: tx}, statusPublisher(producer), timeout, logger)
		},
		func(repo *repository.DriverRepo, tx *repository.RetryingTxRunner, timeout time.Duration, logger logx.Logger) *drivers.Service {
			return drivers.NewService(repo, tx, timeout, logger)
		},
		func(
			repo *repository.RouteRepo,
			tx *repository.RetryingTxRunner,
			cfg *config.Config,
			timeout time.Duration,
			logger logx.Logger,
		) *dispatch.Planner {
			return dispatch.NewPlanner(routeStore{RouteRepo: repo, tx: tx}, dispatch.Config{
				StopDistance: cfg.Dispatch.StopDistance,
				StopDuration: cfg.Dispatch.StopDuration,
			}, timeout, logger)
		},
		provideCarrierInfo,
		func(deliveries *delivery.Service, planner *dispatch.Planner, logger logx.Logger) *events.Processor {
			return events.NewProcessor(deliveries, planner, logger)
		},
	)
}

// fallbackTier maps the configured tier. An unknown type falls back to
// zones.DefaultFallback inside zones.NewService.
func fallbackTier(z config.Zones) domain.FallbackTier {
	return domain.FallbackTier{
		Type:             domain.ZoneType(z.FallbackType),
		EstimatedMinutes: z.FallbackMinutes,
		BasePrice:        z.FallbackPrice,
	}
}

func provideEngine(cfg *config.Config, store *catalog.Store) (*rating.Engine, error) {
	loc, err := cfg.Engine.Location()
	if err != nil {
		return nil, err
	}
	return rating.NewEngine(store, rating.Config{
		Location:    loc,
		CutoffHour:  cfg.Engine.CutoffHour,
		LocalRadius: cfg.Engine.LocalRadius,
	}), nil
}

// provideQuoteCache never fails: an unreachable redis leaves the cache disabled.
func provideQuoteCache(in quoteCacheIn) *cache.QuoteCache {
	c, err := cache.Connect(in.Ctx, in.Cfg.Redis.Addr, in.Cfg.Redis.Password, in.Cfg.Redis.DB, in.Cfg.Redis.QuoteTTL)
	if err != nil {
		in.Logger.Warn("quote cache disabled", logx.String("addr", in.Cfg.Redis.Addr), logx.Err(err))
	}
	return c.WithResults(in.Results)
}

func provideProducer(cfg *config.Config, logger logx.Logger) (*kafka.Producer, error) {
	if !cfg.Kafka.PublishEvents {
		return nil, nil
	}
	return kafka.NewProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.StatusTopic)
}

func provideCarrierInfo(in carrierInfoIn) *carrierinfo.Breaker {
	retrying := carrierinfo.NewRetryingProvider(carrierinfo.NewSimulatedProvider(in.Store), in.Logger, in.Retries, carrierinfo.RetryConfig{
		MaxAttempts: in.Cfg.CarrierInfo.Retry.MaxAttempts,
		BaseDelay:   in.Cfg.CarrierInfo.Retry.BaseDelay,
		MaxDelay:    in.Cfg.CarrierInfo.Retry.MaxDelay,
	})
	return carrierinfo.NewBreaker(retrying, carrierinfo.BreakerConfig{
		MaxRequests:      in.Cfg.CarrierInfo.BreakerHalfOpen,
		OpenFor:          in.Cfg.CarrierInfo.BreakerOpenFor,
		FailureThreshold: in.Cfg.CarrierInfo.BreakerFailures,
		FailureRatio:     in.Cfg.CarrierInfo.BreakerFailRatio,
	}, in.State, in.Logger)
}
