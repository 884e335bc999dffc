// Package router mounts the HTTP API on a chi router.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shipping-allocation-engine/internal/http/handlers"
	obs "shipping-allocation-engine/internal/http/middleware"
	"shipping-allocation-engine/internal/logx"
)

// Probe routes: not rate limited, logged at debug level.
var probes = []string{"/ping", "/healthcheck", "/metrics"}

// Probes returns the routes excluded from rate limiting.
func Probes() []string {
	return append([]string(nil), probes...)
}

// Handlers groups everything New mounts.
type Handlers struct {
	Base       *handlers.Handlers
	Shipping   *handlers.ShippingHandler
	Zones      *handlers.ZoneHandler
	Deliveries *handlers.DeliveryHandler
	Drivers    *handlers.DriverHandler
	Routes     *handlers.RouteHandler
	Carriers   *handlers.CarrierHandler
}

// Options configures cross-cutting middleware. Zero values are usable.
type Options struct {
	Logger         logx.Logger
	Metrics        *obs.HTTPMetrics
	RateLimit      func(http.Handler) http.Handler
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 10 * time.Second

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h Handlers, opt Options) http.Handler {
	if opt.RequestTimeout <= 0 {
		opt.RequestTimeout = defaultRequestTimeout
	}
	if opt.Gatherer == nil {
		opt.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(opt.Logger, opt.Metrics, probes...))
	r.Use(middleware.Recoverer)
	if opt.RateLimit != nil {
		r.Use(opt.RateLimit)
	}
	r.Use(middleware.Timeout(opt.RequestTimeout))

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opt.Gatherer, promhttp.HandlerOpts{}))
	r.NotFound(h.Base.NotFound)
	r.MethodNotAllowed(h.Base.MethodNotAllowed)

	r.Route("/shipping", func(r chi.Router) {
		r.Post("/rate", h.Shipping.Rate)
		r.Post("/analyze", h.Shipping.Analyze)
	})

	r.Route("/zones", func(r chi.Router) {
		r.Get("/", h.Zones.List)
		r.Post("/", h.Zones.Create)
		r.Post("/coverage-check", h.Zones.CheckCoverage)
	})

	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/", h.Deliveries.List)
		r.Post("/", h.Deliveries.Create)
		r.Get("/{id}", h.Deliveries.GetByID)
		r.Put("/{id}/status", h.Deliveries.UpdateStatus)
	})

	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", h.Drivers.List)
		r.Post("/", h.Drivers.Create)
		r.Get("/{id}", h.Drivers.GetByID)
		r.Put("/{id}/status", h.Drivers.UpdateStatus)
	})

	r.Route("/routes", func(r chi.Router) {
		r.Get("/", h.Routes.List)
		r.Post("/optimize", h.Routes.Optimize)
		r.Get("/{id}", h.Routes.GetByID)
		r.Post("/{id}/complete-stop", h.Routes.CompleteStop)
	})

	r.Route("/carriers", func(r chi.Router) {
		r.Get("/", h.Carriers.List)
		r.Get("/{code}/metrics", h.Carriers.Metrics)
	})

	r.Post("/admin/catalog/reload", h.Carriers.Reload)

	return r
}
