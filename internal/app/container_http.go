package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"shipping-allocation-engine/internal/cache"
	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/config"
	"shipping-allocation-engine/internal/gateway/carrierinfo"
	"shipping-allocation-engine/internal/http/handlers"
	obs "shipping-allocation-engine/internal/http/middleware"
	"shipping-allocation-engine/internal/http/middleware/ratelimit"
	"shipping-allocation-engine/internal/http/pprofserver"
	"shipping-allocation-engine/internal/http/router"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/service/bulk"
	"shipping-allocation-engine/internal/service/delivery"
	"shipping-allocation-engine/internal/service/dispatch"
	"shipping-allocation-engine/internal/service/drivers"
	"shipping-allocation-engine/internal/service/shipping"
	"shipping-allocation-engine/internal/service/zones"
	"shipping-allocation-engine/internal/transport/grpchealth"
)

const healthCheckInterval = 10 * time.Second

type rateLimitIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Clock   ratelimit.Clock    `optional:"true"`
}

type pprofServerOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

type routerIn struct {
	dig.In

	Handlers  router.Handlers
	Logger    logx.Logger
	Metrics   *obs.HTTPMetrics
	Gatherer  prometheus.Gatherer
	RateLimit *ratelimit.Middleware `optional:"true"`
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(logger logx.Logger, rates *shipping.Service, batch *bulk.Analyzer) *handlers.ShippingHandler {
			return handlers.NewShippingHandler(logger, rates, batch)
		},
		func(logger logx.Logger, uc *zones.Service) *handlers.ZoneHandler {
			return handlers.NewZoneHandler(logger, uc)
		},
		func(logger logx.Logger, uc *delivery.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, uc)
		},
		func(logger logx.Logger, uc *drivers.Service) *handlers.DriverHandler {
			return handlers.NewDriverHandler(logger, uc)
		},
		func(logger logx.Logger, uc *dispatch.Planner) *handlers.RouteHandler {
			return handlers.NewRouteHandler(logger, uc)
		},
		func(
			logger logx.Logger,
			store *catalog.Store,
			metrics *carrierinfo.Breaker,
			quotes *cache.QuoteCache,
		) *handlers.CarrierHandler {
			return handlers.NewCarrierHandler(logger, store, metrics, quotes)
		},
		func(
			base *handlers.Handlers,
			ship *handlers.ShippingHandler,
			zh *handlers.ZoneHandler,
			dh *handlers.DeliveryHandler,
			drv *handlers.DriverHandler,
			rh *handlers.RouteHandler,
			ch *handlers.CarrierHandler,
		) router.Handlers {
			return router.Handlers{
				Base:       base,
				Shipping:   ship,
				Zones:      zh,
				Deliveries: dh,
				Drivers:    drv,
				Routes:     rh,
				Carriers:   ch,
			}
		},
		provideRateLimit,
		func(in routerIn) http.Handler {
			opt := router.Options{
				Logger:   in.Logger,
				Metrics:  in.Metrics,
				Gatherer: in.Gatherer,
			}
			if in.RateLimit != nil {
				opt.RateLimit = in.RateLimit.Handler()
			}
			return router.New(in.Handlers, opt)
		},
		serverProvider,
		providePprofServer,
		provideHealthServer,
	)
}

// provideRateLimit returns nil when the limiter is switched off.
func provideRateLimit(in rateLimitIn) *ratelimit.Middleware {
	if !in.Cfg.RateLimit.Enabled {
		return nil
	}
	clock := in.Clock
	if clock == nil {
		clock = ratelimit.RealClock{}
	}
	limiter := ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       in.Cfg.RateLimit.Rate,
		Burst:      in.Cfg.RateLimit.Burst,
		TTL:        in.Cfg.RateLimit.TTL,
		MaxBuckets: in.Cfg.RateLimit.MaxBuckets,
	})
	return ratelimit.New(in.Logger, in.Counter, limiter, router.Probes()...)
}

func providePprofServer(cfg *config.Config, logger logx.Logger) pprofServerOut {
	if !cfg.Pprof.Enabled {
		return pprofServerOut{}
	}
	return pprofServerOut{Server: pprofserver.NewServer(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	}, logger)}
}

// provideHealthServer returns nil when the gRPC health port is 0.
func provideHealthServer(cfg *config.Config, pool *pgxpool.Pool, store *catalog.Store, logger logx.Logger) *grpchealth.Server {
	if cfg.GRPCHealth.Port == 0 {
		return nil
	}
	checks := map[string]grpchealth.Check{
		"postgres": func(ctx context.Context) error {
			if pool == nil {
				return errors.New("no pool")
			}
			return pool.Ping(ctx)
		},
		"catalog": func(context.Context) error {
			if store.Current() == nil {
				return errors.New("catalog not loaded")
			}
			return nil
		},
	}
	return grpchealth.New(cfg.GRPCHealth.Port, checks, healthCheckInterval, logger)
}
