package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	obs "shipping-allocation-engine/internal/http/middleware"
	"shipping-allocation-engine/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal  prometheus.Counter     `name:"rate_limit_exceeded_total"`
	CarrierInfoRetriesTotal prometheus.Counter     `name:"carrier_info_retries_total"`
	StorageRetriesTotal     prometheus.Counter     `name:"storage_tx_retries_total"`
	BatchDuration           prometheus.Histogram   `name:"bulk_analysis_duration_seconds"`
	BreakerState            prometheus.Gauge       `name:"carrier_info_breaker_state"`
	QuoteCacheResults       *prometheus.CounterVec `name:"quote_cache_results_total"`
	HTTP                    *obs.HTTPMetrics
}

// provideMetrics registers the process collectors. A collector registered
// by an earlier container in the same process is reused.
func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.CarrierInfoRetriesTotal, err = register(reg, "carrier_info_retries_total", metrics.NewCarrierInfoRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.StorageRetriesTotal, err = register(reg, "storage_tx_retries_total", metrics.NewStorageRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.BatchDuration, err = register(reg, "bulk_analysis_duration_seconds", metrics.NewBatchDurationSeconds()); err != nil {
		return metricsOut{}, err
	}
	if out.BreakerState, err = register(reg, "carrier_info_breaker_state", metrics.NewCarrierInfoBreakerState()); err != nil {
		return metricsOut{}, err
	}
	if out.QuoteCacheResults, err = register(reg, "quote_cache_results_total", metrics.NewQuoteCacheResultsTotal()); err != nil {
		return metricsOut{}, err
	}

	out.HTTP = obs.NewHTTPMetrics()
	for _, c := range out.HTTP.Collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return metricsOut{}, fmt.Errorf("register http metrics: %w", err)
			}
		}
	}
	return out, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, name string, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
