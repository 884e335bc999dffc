package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/config"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/repository"
)

const (
	serviceName = "service-shipping"
	workerName  = "service-shipping-worker"

	dbConnectRetries = 10
	dbConnectDelay   = time.Second
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// zoneRefreshInterval is how often the coverage snapshot is reloaded.
type zoneRefreshInterval time.Duration

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the API container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds and returns the events worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx, serviceName)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx, workerName)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildShared(ctx context.Context, service string) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, service); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the API container with production defaults
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with production defaults
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, service string) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() logx.Logger { return NewLogger(service) },
		config.Load,
		func() prometheus.Registerer { return prometheus.DefaultRegisterer },
		func() prometheus.Gatherer { return prometheus.DefaultGatherer },
		func(cfg *config.Config, logger logx.Logger) (*catalog.Store, error) {
			return catalog.NewStore(cfg.Catalog.Path, logger)
		},
		func(cfg *config.Config) zoneRefreshInterval {
			return zoneRefreshInterval(cfg.Zones.RefreshInterval)
		},
		func() time.Duration { return 3 * time.Second },
	)
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}

type txRunnerIn struct {
	dig.In

	Repo    *repository.DeliveryRepo
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"storage_tx_retries_total"`
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
		if err != nil {
			return nil, err
		}
		if cfg.DB.AutoMigrate {
			if err := repository.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema migrated")
		}
		return pool, nil
	}
	providerTx := func(in txRunnerIn) *repository.RetryingTxRunner {
		return repository.NewRetryingTxRunner(in.Repo, in.Logger, in.Retries, repository.RetryConfig{
			MaxAttempts: in.Cfg.StorageRetry.MaxAttempts,
			BaseDelay:   in.Cfg.StorageRetry.BaseDelay,
			MaxDelay:    in.Cfg.StorageRetry.MaxDelay,
		})
	}
	return provideAll(container,
		providerDB,
		repository.NewDeliveryRepo,
		repository.NewRouteRepo,
		repository.NewZoneRepo,
		repository.NewDriverRepo,
		providerTx,
	)
}
