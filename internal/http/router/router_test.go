package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-allocation-engine/internal/http/handlers"
	obs "shipping-allocation-engine/internal/http/middleware"
	"shipping-allocation-engine/internal/http/middleware/ratelimit"
	"shipping-allocation-engine/internal/http/router"
	"shipping-allocation-engine/internal/logx"
)

// Handlers without usecases: every request below is rejected before reaching one.
func bareHandlers() router.Handlers {
	log := logx.Nop()
	return router.Handlers{
		Base:       handlers.New(log),
		Shipping:   handlers.NewShippingHandler(log, nil, nil),
		Zones:      handlers.NewZoneHandler(log, nil),
		Deliveries: handlers.NewDeliveryHandler(log, nil),
		Drivers:    handlers.NewDriverHandler(log, nil),
		Routes:     handlers.NewRouteHandler(log, nil),
		Carriers:   handlers.NewCarrierHandler(log, nil, nil, nil),
	}
}

type denyAll struct{}

func (denyAll) Allow(string) (bool, time.Duration) { return false, time.Second }

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNew_ServiceEndpoints(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := obs.NewHTTPMetrics()
	for _, c := range m.Collectors() {
		require.NoError(t, reg.Register(c))
	}
	h := router.New(bareHandlers(), router.Options{Metrics: m, Gatherer: reg})

	rr := serve(h, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())

	rr = serve(h, http.MethodHead, "/healthcheck", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="GET",route="/ping",status="200"} 1`)
}

func TestNew_JSONErrorsForUnknownRoutes(t *testing.T) {
	t.Parallel()

	h := router.New(bareHandlers(), router.Options{})

	rr := serve(h, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rr.Body.String())

	rr = serve(h, http.MethodDelete, "/zones", "")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rr.Body.String())
}

func TestNew_MountsAPIRoutes(t *testing.T) {
	t.Parallel()

	h := router.New(bareHandlers(), router.Options{})

	cases := []struct {
		method, target, body string
	}{
		{http.MethodPost, "/shipping/rate", `{}`},
		{http.MethodPost, "/shipping/analyze", `{"orders":[]}`},
		{http.MethodGet, "/zones?center_id=x", ""},
		{http.MethodPost, "/zones", `{}`},
		{http.MethodPost, "/zones/coverage-check", `{}`},
		{http.MethodGet, "/deliveries?status=x&driver_id=-1", ""},
		{http.MethodPost, "/deliveries", `{}`},
		{http.MethodGet, "/deliveries/abc", ""},
		{http.MethodPut, "/deliveries/abc/status", `{}`},
		{http.MethodGet, "/drivers?center_id=0", ""},
		{http.MethodPost, "/drivers", `{}`},
		{http.MethodGet, "/drivers/abc", ""},
		{http.MethodPut, "/drivers/abc/status", `{}`},
		{http.MethodGet, "/routes?driver_id=x", ""},
		{http.MethodPost, "/routes/optimize", `{}`},
		{http.MethodGet, "/routes/abc", ""},
		{http.MethodPost, "/routes/abc/complete-stop", ""},
		{http.MethodGet, "/carriers/%20/metrics", ""},
	}
	for _, tc := range cases {
		rr := serve(h, tc.method, tc.target, tc.body)
		assert.Equalf(t, http.StatusBadRequest, rr.Code, "%s %s: %s", tc.method, tc.target, rr.Body.String())
	}
}

func TestNew_RateLimitSkipsProbes(t *testing.T) {
	t.Parallel()

	limit := ratelimit.New(nil, nil, denyAll{}, router.Probes()...).Handler()
	h := router.New(bareHandlers(), router.Options{RateLimit: limit})

	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/ping", "").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodPost, "/shipping/rate", `{}`).Code)
}
