package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultRedis = Redis{
	QuoteTTL: 5 * time.Minute,
}

var defaultKafka = Kafka{
	GroupID:     "shipping-worker",
	StatusTopic: "delivery.status",
	EventsTopic: "delivery.events",
}

var defaultEngine = Engine{
	Timezone:    "UTC",
	CutoffHour:  18,
	LocalRadius: 50,
}

var defaultDispatch = Dispatch{
	StopDistance: 4.2,
	StopDuration: 28 * time.Minute,
}

var defaultBulk = Bulk{
	Parallelism: 8,
	MaxOrders:   1000,
}

var defaultZones = Zones{
	RefreshInterval: 30 * time.Second,
	FallbackType:    "next-day",
	FallbackMinutes: 1440,
	FallbackPrice:   2.99,
}

var defaultStorageRetry = Retry{
	MaxAttempts: 4,
	BaseDelay:   50 * time.Millisecond,
	MaxDelay:    400 * time.Millisecond,
}

var defaultCarrierInfo = CarrierInfo{
	Retry: Retry{
		MaxAttempts: 4,
		BaseDelay:   150 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
	},
	BreakerFailures:  5,
	BreakerOpenFor:   30 * time.Second,
	BreakerHalfOpen:  1,
	BreakerFailRatio: 0.6,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = PprofConfig{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultRedis returns the default quote cache settings.
func DefaultRedis() Redis { return defaultRedis }

// DefaultKafka returns the default kafka settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultEngine returns the default rating engine settings.
func DefaultEngine() Engine { return defaultEngine }

// DefaultDispatch returns the default route planning estimates.
func DefaultDispatch() Dispatch { return defaultDispatch }

// DefaultBulk returns the default batch analysis settings.
func DefaultBulk() Bulk { return defaultBulk }

// DefaultZones returns the default zone snapshot settings.
func DefaultZones() Zones { return defaultZones }

// DefaultStorageRetry returns the default storage retry settings.
func DefaultStorageRetry() Retry { return defaultStorageRetry }

// DefaultCarrierInfo returns the default carrier info guard settings.
func DefaultCarrierInfo() CarrierInfo { return defaultCarrierInfo }

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultPprof returns the default pprof settings.
func DefaultPprof() PprofConfig { return defaultPprof }
