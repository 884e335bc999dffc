package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewCarrierInfoRetriesTotal returns a Prometheus counter for retry attempts against the carrier info provider
func NewCarrierInfoRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carrier_info_retries_total",
		Help: "Total number of retry attempts performed against the carrier info provider",
	})
}

// NewStorageRetriesTotal returns a Prometheus counter for re-run storage transactions
func NewStorageRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storage_tx_retries_total",
		Help: "Total number of storage transactions re-run after a transient failure",
	})
}

// NewBatchDurationSeconds returns a histogram of bulk analysis wall time
func NewBatchDurationSeconds() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bulk_analysis_duration_seconds",
		Help:    "Wall time of bulk shipping analysis requests",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})
}

// NewCarrierInfoBreakerState returns a gauge of the carrier info breaker state (0 closed, 1 half-open, 2 open)
func NewCarrierInfoBreakerState() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "carrier_info_breaker_state",
		Help: "Carrier info circuit breaker state: 0 closed, 1 half-open, 2 open",
	})
}

// NewQuoteCacheResultsTotal returns a counter of quote cache lookups by result (hit, miss, error)
func NewQuoteCacheResultsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_cache_results_total",
		Help: "Quote cache lookups by result",
	}, []string{"result"})
}
