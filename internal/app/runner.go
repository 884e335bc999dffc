package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"shipping-allocation-engine/internal/cache"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/service/zones"
	"shipping-allocation-engine/internal/transport/grpchealth"
	"shipping-allocation-engine/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP API
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the servers using the provided DI container and blocks until shutdown
func (r *Runner) MustRun(container *dig.Container) {
	logger := loggerFrom(container)
	err := r.runFn(container)
	switch {
	case err == nil:
		return
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	var logger logx.Logger = logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type appIn struct {
	dig.In

	Ctx      context.Context
	Logger   logx.Logger
	Server   *http.Server
	Pprof    *http.Server       `name:"pprof_server" optional:"true"`
	Health   *grpchealth.Server `optional:"true"`
	Pool     *pgxpool.Pool
	Zones    *zones.Service
	Interval zoneRefreshInterval
	Producer *kafka.Producer   `optional:"true"`
	Quotes   *cache.QuoteCache `optional:"true"`
}

func run(container *dig.Container) error {
	var runErr error
	if err := container.Invoke(func(in appIn) { runErr = appRun(in) }); err != nil {
		return err
	}
	return runErr
}

func appRun(in appIn) error {
	logger := in.Logger
	defer closeResources(in, logger)

	ctx, cancel := context.WithCancel(in.Ctx)
	defer cancel()

	startZoneRefreshLoop(ctx, logger, in.Zones, time.Duration(in.Interval))

	g, gctx := errgroup.WithContext(ctx)
	servers := []*http.Server{in.Server}
	if in.Pprof != nil {
		servers = append(servers, in.Pprof)
	}
	for _, srv := range servers {
		g.Go(func() error { return serve(srv, logger) })
	}
	if in.Health != nil {
		g.Go(func() error { return in.Health.Run(gctx) })
	}
	g.Go(func() error {
		waitForShutdown(gctx, logger)
		for _, srv := range servers {
			gracefulShutdown(srv, logger, shutdownTimeout)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return in.Ctx.Err()
}

func serve(srv *http.Server, logger logx.Logger) error {
	logger.Info("http listening", logx.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return nil
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down", logx.String("service", serviceName))
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(in appIn, logger logx.Logger) {
	if err := in.Producer.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
	if in.Quotes != nil {
		if err := in.Quotes.Close(); err != nil {
			logger.Error("quote cache close error", logx.Err(err))
		}
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
