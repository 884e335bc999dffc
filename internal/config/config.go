package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port int

	DB           DB
	Redis        Redis
	Kafka        Kafka
	Catalog      Catalog
	Engine       Engine
	Dispatch     Dispatch
	Bulk         Bulk
	Zones        Zones
	StorageRetry Retry
	CarrierInfo  CarrierInfo
	RateLimit    RateLimit
	Pprof        PprofConfig
	GRPCHealth   GRPCHealth
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
	// AutoMigrate applies the embedded schema on startup.
	AutoMigrate bool
}

// DSN returns a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Redis stores quote cache settings. Empty Addr disables the cache.
type Redis struct {
	Addr     string
	Password string
	DB       int
	QuoteTTL time.Duration
}

// Kafka stores broker settings. Empty Brokers disables kafka.
type Kafka struct {
	Brokers       []string
	GroupID       string
	StatusTopic   string
	EventsTopic   string
	PublishEvents bool
}

// Catalog stores the reference data source. Empty Path uses the embedded seed.
type Catalog struct {
	Path string
}

// Engine stores rating engine settings.
type Engine struct {
	Timezone    string
	CutoffHour  int
	LocalRadius float64
}

// Location resolves Timezone.
func (e Engine) Location() (*time.Location, error) {
	return time.LoadLocation(e.Timezone)
}

// Dispatch stores route planning estimates.
type Dispatch struct {
	StopDistance float64
	StopDuration time.Duration
}

// Bulk stores batch analysis settings.
type Bulk struct {
	Parallelism int
	MaxOrders   int
}

// Zones stores zone snapshot settings and the tier suggested for uncovered codes.
type Zones struct {
	RefreshInterval time.Duration
	FallbackType    string
	FallbackMinutes int
	FallbackPrice   float64
}

// Retry stores bounded backoff settings.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// CarrierInfo stores carrier info provider guard settings.
type CarrierInfo struct {
	Retry            Retry
	BreakerFailures  uint32
	BreakerOpenFor   time.Duration
	BreakerHalfOpen  uint32
	BreakerFailRatio float64
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// PprofConfig stores pprof server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// GRPCHealth stores gRPC health server settings. Port 0 disables it.
type GRPCHealth struct {
	Port int
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return LoadFrom(os.Args[1:])
}

// LoadFrom is Load with explicit command line arguments.
func LoadFrom(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet("shipping", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Catalog.Path, "catalog", cfg.Catalog.Path, "path to catalog yaml")
	fs.IntVar(&cfg.Bulk.Parallelism, "bulk-parallelism", cfg.Bulk.Parallelism, "concurrent batch analyses")
	fs.IntVar(&cfg.GRPCHealth.Port, "grpc-health-port", cfg.GRPCHealth.Port, "grpc health port (0 disables)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	var (
		cfg = &Config{
			Port:         DefaultPort(),
			DB:           DefaultDB(),
			Redis:        DefaultRedis(),
			Kafka:        DefaultKafka(),
			Engine:       DefaultEngine(),
			Dispatch:     DefaultDispatch(),
			Bulk:         DefaultBulk(),
			Zones:        DefaultZones(),
			StorageRetry: DefaultStorageRetry(),
			CarrierInfo:  DefaultCarrierInfo(),
			RateLimit:    DefaultRateLimit(),
			Pprof:        DefaultPprof(),
		}
		err error
	)

	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	if cfg.DB.AutoMigrate, err = envBool("POSTGRES_AUTO_MIGRATE", cfg.DB.AutoMigrate); err != nil {
		return nil, err
	}
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}

	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envString("REDIS_PASSWORD", cfg.Redis.Password)
	if cfg.Redis.DB, err = envInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return nil, err
	}
	if cfg.Redis.QuoteTTL, err = envDuration("QUOTE_CACHE_TTL", cfg.Redis.QuoteTTL); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.StatusTopic = envString("KAFKA_STATUS_TOPIC", cfg.Kafka.StatusTopic)
	cfg.Kafka.EventsTopic = envString("KAFKA_EVENTS_TOPIC", cfg.Kafka.EventsTopic)
	if cfg.Kafka.PublishEvents, err = envBool("KAFKA_PUBLISH_EVENTS", cfg.Kafka.PublishEvents); err != nil {
		return nil, err
	}

	cfg.Catalog.Path = envString("CATALOG_PATH", cfg.Catalog.Path)

	cfg.Engine.Timezone = envString("ENGINE_TIMEZONE", cfg.Engine.Timezone)
	if cfg.Engine.CutoffHour, err = envInt("ENGINE_CUTOFF_HOUR", cfg.Engine.CutoffHour); err != nil {
		return nil, err
	}
	if cfg.Engine.LocalRadius, err = envFloat("ENGINE_LOCAL_RADIUS", cfg.Engine.LocalRadius); err != nil {
		return nil, err
	}

	if cfg.Dispatch.StopDistance, err = envFloat("DISPATCH_STOP_DISTANCE", cfg.Dispatch.StopDistance); err != nil {
		return nil, err
	}
	if cfg.Dispatch.StopDuration, err = envDuration("DISPATCH_STOP_DURATION", cfg.Dispatch.StopDuration); err != nil {
		return nil, err
	}

	if cfg.Bulk.Parallelism, err = envInt("BULK_PARALLELISM", cfg.Bulk.Parallelism); err != nil {
		return nil, err
	}
	if cfg.Bulk.MaxOrders, err = envInt("BULK_MAX_ORDERS", cfg.Bulk.MaxOrders); err != nil {
		return nil, err
	}

	if cfg.Zones.RefreshInterval, err = envDuration("ZONE_REFRESH_INTERVAL", cfg.Zones.RefreshInterval); err != nil {
		return nil, err
	}
	cfg.Zones.FallbackType = envString("ZONE_FALLBACK_TYPE", cfg.Zones.FallbackType)
	if cfg.Zones.FallbackMinutes, err = envInt("ZONE_FALLBACK_MINUTES", cfg.Zones.FallbackMinutes); err != nil {
		return nil, err
	}
	if cfg.Zones.FallbackPrice, err = envFloat("ZONE_FALLBACK_PRICE", cfg.Zones.FallbackPrice); err != nil {
		return nil, err
	}

	if cfg.StorageRetry, err = envRetry("STORAGE_RETRY", cfg.StorageRetry); err != nil {
		return nil, err
	}
	if cfg.CarrierInfo.Retry, err = envRetry("CARRIER_INFO_RETRY", cfg.CarrierInfo.Retry); err != nil {
		return nil, err
	}
	failures, err := envInt("CARRIER_INFO_BREAKER_FAILURES", int(cfg.CarrierInfo.BreakerFailures))
	if err != nil {
		return nil, err
	}
	cfg.CarrierInfo.BreakerFailures = uint32(failures)
	if cfg.CarrierInfo.BreakerOpenFor, err = envDuration("CARRIER_INFO_BREAKER_OPEN_FOR", cfg.CarrierInfo.BreakerOpenFor); err != nil {
		return nil, err
	}

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.TTL, err = envDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets); err != nil {
		return nil, err
	}

	if cfg.Pprof.Enabled, err = envBool("PPROF_ENABLED", cfg.Pprof.Enabled); err != nil {
		return nil, err
	}
	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)

	if cfg.GRPCHealth.Port, err = envInt("GRPC_HEALTH_PORT", cfg.GRPCHealth.Port); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.GRPCHealth.Port < 0 || c.GRPCHealth.Port > 65535 {
		return fmt.Errorf("invalid grpc health port: %d", c.GRPCHealth.Port)
	}
	if c.Engine.CutoffHour < 0 || c.Engine.CutoffHour > 23 {
		return fmt.Errorf("invalid ENGINE_CUTOFF_HOUR: %d", c.Engine.CutoffHour)
	}
	if c.Engine.LocalRadius < 0 {
		return fmt.Errorf("invalid ENGINE_LOCAL_RADIUS: %v", c.Engine.LocalRadius)
	}
	if _, err := c.Engine.Location(); err != nil {
		return fmt.Errorf("invalid ENGINE_TIMEZONE %q: %w", c.Engine.Timezone, err)
	}
	if c.Bulk.Parallelism <= 0 {
		return fmt.Errorf("invalid BULK_PARALLELISM: %d", c.Bulk.Parallelism)
	}
	if c.Zones.RefreshInterval <= 0 {
		return fmt.Errorf("invalid ZONE_REFRESH_INTERVAL: %s", c.Zones.RefreshInterval)
	}
	if c.Zones.FallbackMinutes <= 0 || c.Zones.FallbackPrice < 0 {
		return fmt.Errorf("invalid ZONE_FALLBACK_MINUTES/ZONE_FALLBACK_PRICE: %d/%v", c.Zones.FallbackMinutes, c.Zones.FallbackPrice)
	}
	if c.StorageRetry.MaxAttempts <= 0 {
		return fmt.Errorf("invalid STORAGE_RETRY_MAX_ATTEMPTS: %d", c.StorageRetry.MaxAttempts)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func envRetry(prefix string, def Retry) (Retry, error) {
	var err error
	r := def
	if r.MaxAttempts, err = envInt(prefix+"_MAX_ATTEMPTS", def.MaxAttempts); err != nil {
		return Retry{}, err
	}
	if r.BaseDelay, err = envDuration(prefix+"_BASE_DELAY", def.BaseDelay); err != nil {
		return Retry{}, err
	}
	if r.MaxDelay, err = envDuration(prefix+"_MAX_DELAY", def.MaxDelay); err != nil {
		return Retry{}, err
	}
	return r, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
