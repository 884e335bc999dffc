package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
)

type stubRouteUsecase struct {
	optimizeFn func(ctx context.Context, plan domain.RoutePlan) (domain.Route, error)
	completeFn func(ctx context.Context, c domain.StopCompletion) (domain.Route, error)
	getFn      func(ctx context.Context, id int64) (domain.Route, error)
	listFn     func(ctx context.Context, f domain.RouteFilter) ([]domain.Route, error)
}

func (s *stubRouteUsecase) OptimizeRoute(ctx context.Context, plan domain.RoutePlan) (domain.Route, error) {
	return s.optimizeFn(ctx, plan)
}

func (s *stubRouteUsecase) CompleteStop(ctx context.Context, c domain.StopCompletion) (domain.Route, error) {
	return s.completeFn(ctx, c)
}

func (s *stubRouteUsecase) Get(ctx context.Context, id int64) (domain.Route, error) {
	return s.getFn(ctx, id)
}

func (s *stubRouteUsecase) List(ctx context.Context, f domain.RouteFilter) ([]domain.Route, error) {
	return s.listFn(ctx, f)
}

func TestRouteHandler_Optimize_OK(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	uc := &stubRouteUsecase{
		optimizeFn: func(_ context.Context, plan domain.RoutePlan) (domain.Route, error) {
			require.Equal(t, []int64{3, 1, 2}, plan.DeliveryIDs)
			require.Zero(t, plan.DriverID)
			require.Equal(t, start, plan.StartAt)
			return domain.Route{
				ID:               4,
				DriverID:         2,
				Name:             "Route 2025-01-08 #4",
				DeliveryIDs:      plan.DeliveryIDs,
				StartAt:          start,
				TotalDistance:    7.5,
				TotalMinutes:     45,
				EstimatedArrival: start.Add(45 * time.Minute),
				Status:           domain.RouteActive,
			}, nil
		},
	}

	body := `{"delivery_ids":[3,1,2],"start_time":"2025-01-08T09:00:00Z"}`
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, uc).Optimize(rr, jsonRequest(http.MethodPost, "/routes/optimize", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/routes/4", rr.Header().Get("Location"))
	var resp routeDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Remaining)
	assert.Equal(t, 45, resp.TotalMinutes)
	assert.Equal(t, "active", resp.Status)
	assert.Nil(t, resp.EndAt)
}

func TestRouteHandler_Optimize_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewRouteHandler(nil, &stubRouteUsecase{}).Optimize(rr, jsonRequest(http.MethodPost, "/routes/optimize", `{"delivery_ids":[1,1]}`))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid delivery_ids: must not contain duplicates","field":"delivery_ids"}`, rr.Body.String())
}

func TestRouteHandler_Optimize_Conflict(t *testing.T) {
	t.Parallel()

	uc := &stubRouteUsecase{
		optimizeFn: func(context.Context, domain.RoutePlan) (domain.Route, error) {
			return domain.Route{}, fmt.Errorf("delivery 3 already routed: %w", apperr.ErrConflict)
		},
	}
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, uc).Optimize(rr, jsonRequest(http.MethodPost, "/routes/optimize", `{"delivery_ids":[3]}`))

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error":"delivery 3 already routed"}`, rr.Body.String())
}

func TestRouteHandler_CompleteStop(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	uc := &stubRouteUsecase{
		completeFn: func(_ context.Context, c domain.StopCompletion) (domain.Route, error) {
			require.Equal(t, domain.StopCompletion{RouteID: 4}, c)
			return domain.Route{ID: 4, DeliveryIDs: []int64{1, 2}, CompletedDeliveries: 2, CurrentStop: 2, Status: domain.RouteCompleted, EndAt: &end}, nil
		},
	}
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/routes/4/complete-stop", nil), "id", "4")
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, uc).CompleteStop(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp routeDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Zero(t, resp.Remaining)
	require.NotNil(t, resp.EndAt)
	assert.Equal(t, end, *resp.EndAt)
}

func TestRouteHandler_CompleteStop_ExpectedStop(t *testing.T) {
	t.Parallel()

	uc := &stubRouteUsecase{
		completeFn: func(_ context.Context, c domain.StopCompletion) (domain.Route, error) {
			require.Equal(t, int64(4), c.RouteID)
			require.NotNil(t, c.Stop)
			require.Equal(t, 1, *c.Stop)
			return domain.Route{}, fmt.Errorf("route 4 is at stop 2, not 1: %w", apperr.ErrConflict)
		},
	}
	req := withURLParam(jsonRequest(http.MethodPost, "/routes/4/complete-stop", `{"stop":1}`), "id", "4")
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, uc).CompleteStop(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestRouteHandler_CompleteStop_NegativeStop(t *testing.T) {
	t.Parallel()

	req := withURLParam(jsonRequest(http.MethodPost, "/routes/4/complete-stop", `{"stop":-1}`), "id", "4")
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, &stubRouteUsecase{}).CompleteStop(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid stop: must be >= 0","field":"stop"}`, rr.Body.String())
}

func TestRouteHandler_CompleteStop_BadID(t *testing.T) {
	t.Parallel()

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/routes/0/complete-stop", nil), "id", "0")
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, &stubRouteUsecase{}).CompleteStop(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouteHandler_List_Totals(t *testing.T) {
	t.Parallel()

	uc := &stubRouteUsecase{
		listFn: func(_ context.Context, f domain.RouteFilter) ([]domain.Route, error) {
			require.NotNil(t, f.Status)
			require.Equal(t, domain.RouteActive, *f.Status)
			return []domain.Route{
				{ID: 1, Status: domain.RouteActive, TotalDistance: 1.25},
				{ID: 2, Status: domain.RouteActive, TotalDistance: 2.13},
			}, nil
		},
	}
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, uc).List(rr, httptest.NewRequest(http.MethodGet, "/routes?status=active", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp routeListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, routeTotalsDTO{Total: 2, ByStatus: map[string]int{"active": 2}, TotalDistance: 3.4}, resp.Totals)
	assert.Equal(t, []int64{}, resp.Routes[0].DeliveryIDs)
}

func TestRouteHandler_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubRouteUsecase{
		getFn: func(context.Context, int64) (domain.Route, error) { return domain.Route{}, apperr.ErrNotFound },
	}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/routes/5", nil), "id", "5")
	rr := httptest.NewRecorder()
	NewRouteHandler(nil, uc).GetByID(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rr.Body.String())
}
