package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/gateway/carrierinfo"
	testlog "shipping-allocation-engine/internal/testutil"
)

type stubMetrics struct {
	metricsFn func(ctx context.Context, code, route string) (carrierinfo.Metrics, error)
}

func (s *stubMetrics) Metrics(ctx context.Context, code, route string) (carrierinfo.Metrics, error) {
	return s.metricsFn(ctx, code, route)
}

type stubQuotes struct {
	n     int
	err   error
	calls int
}

func (s *stubQuotes) InvalidateAll(context.Context) (int, error) {
	s.calls++
	return s.n, s.err
}

type failingStore struct {
	cur *catalog.Catalog
	err error
}

func (s *failingStore) Current() *catalog.Catalog         { return s.cur }
func (s *failingStore) Reload() (*catalog.Catalog, error) { return nil, s.err }

func seedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Seed()
	require.NoError(t, err)
	return c
}

func TestCarrierHandler_List(t *testing.T) {
	t.Parallel()

	c := seedCatalog(t)
	rr := httptest.NewRecorder()
	NewCarrierHandler(nil, catalog.NewStaticStore(c), nil, nil).List(rr, httptest.NewRequest(http.MethodGet, "/carriers", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp carrierListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, c.Version, resp.Version)
	require.Len(t, resp.Carriers, len(c.Carriers))

	var services int
	for _, cr := range resp.Carriers {
		services += len(cr.Services)
		if cr.Code == "UPS" {
			assert.Equal(t, 0.96, cr.Reliability)
		}
	}
	assert.Equal(t, len(c.Services), services)
}

func TestCarrierHandler_Metrics_UppercasesCode(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	m := &stubMetrics{
		metricsFn: func(_ context.Context, code, route string) (carrierinfo.Metrics, error) {
			require.Equal(t, "UPS", code)
			require.Equal(t, "55401-90210", route)
			return carrierinfo.Metrics{CarrierCode: code, CarrierName: "UPS", Route: route, OnTimePercentage: 96, Simulated: true, AsOf: asOf}, nil
		},
	}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/carriers/ups/metrics?route=55401-90210", nil), "code", "ups")
	rr := httptest.NewRecorder()
	NewCarrierHandler(nil, nil, m, nil).Metrics(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp carrierMetricsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Simulated)
	assert.Equal(t, 96.0, resp.OnTimePercentage)
	assert.Equal(t, asOf, resp.AsOf)
}

func TestCarrierHandler_Metrics_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unknown carrier", fmt.Errorf("carrier XYZ: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"breaker open", fmt.Errorf("%w: carrier info: %w", apperr.ErrUnavailable, errors.New("circuit breaker is open")), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := &stubMetrics{
				metricsFn: func(context.Context, string, string) (carrierinfo.Metrics, error) { return carrierinfo.Metrics{}, tc.err },
			}
			req := withURLParam(httptest.NewRequest(http.MethodGet, "/carriers/xyz/metrics", nil), "code", "xyz")
			rr := httptest.NewRecorder()
			NewCarrierHandler(nil, nil, m, nil).Metrics(rr, req)

			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestCarrierHandler_Metrics_EmptyCode(t *testing.T) {
	t.Parallel()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/carriers/%20/metrics", nil), "code", " ")
	rr := httptest.NewRecorder()
	NewCarrierHandler(nil, nil, &stubMetrics{}, nil).Metrics(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid code: must not be empty","field":"code"}`, rr.Body.String())
}

func TestCarrierHandler_Reload_InvalidatesQuotes(t *testing.T) {
	t.Parallel()

	c := seedCatalog(t)
	quotes := &stubQuotes{n: 4}
	rr := httptest.NewRecorder()
	NewCarrierHandler(nil, catalog.NewStaticStore(c), nil, quotes).Reload(rr, httptest.NewRequest(http.MethodPost, "/admin/catalog/reload", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, quotes.calls)
	var resp reloadResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, reloadResponse{
		Version:           c.Version,
		PreviousVersion:   c.Version,
		Carriers:          len(c.Carriers),
		Services:          len(c.Services),
		Offers:            len(c.Offers),
		QuotesInvalidated: 4,
	}, resp)
}

func TestCarrierHandler_Reload_CacheFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	quotes := &stubQuotes{err: errors.New("redis: connection refused")}
	rr := httptest.NewRecorder()
	NewCarrierHandler(rec.Logger(), catalog.NewStaticStore(seedCatalog(t)), nil, quotes).
		Reload(rr, httptest.NewRequest(http.MethodPost, "/admin/catalog/reload", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, rec.ByMsg("quote cache invalidation failed"), 1)
}

func TestCarrierHandler_Reload_BadCatalogKeepsPrevious(t *testing.T) {
	t.Parallel()

	store := &failingStore{
		cur: seedCatalog(t),
		err: &apperr.ConfigurationError{Source: "catalog.yaml", Reason: "duplicate carrier UPS"},
	}
	quotes := &stubQuotes{}
	rr := httptest.NewRecorder()
	NewCarrierHandler(nil, store, nil, quotes).Reload(rr, httptest.NewRequest(http.MethodPost, "/admin/catalog/reload", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"configuration catalog.yaml: duplicate carrier UPS"}`, rr.Body.String())
	assert.Zero(t, quotes.calls)
}
