package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shipping-allocation-engine/internal/domain"
)

const routeColumns = `id, driver_id, name, delivery_ids, start_at, end_at, total_distance, total_minutes,
	estimated_arrival, status, current_stop, completed_deliveries`

// RouteRepo represents delivery route repository.
type RouteRepo struct {
	db *pgxpool.Pool
}

// NewRouteRepo creates a new RouteRepo.
func NewRouteRepo(db *pgxpool.Pool) *RouteRepo {
	return &RouteRepo{db: db}
}

// GetRoute returns the route or nil when it does not exist.
func (r *RouteRepo) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	rt, err := scanRoute(r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM delivery_routes WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route: %w", err)
	}
	return &rt, nil
}

// ListRoutes returns routes matching the filter, newest first.
func (r *RouteRepo) ListRoutes(ctx context.Context, f domain.RouteFilter) ([]domain.Route, error) {
	var w where
	if f.DriverID != nil {
		w.add("driver_id = $%d", *f.DriverID)
	}
	if f.Status != nil {
		w.add("status = $%d", string(*f.Status))
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+routeColumns+` FROM delivery_routes`+w.String()+` ORDER BY start_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	return collectRoutes(rows)
}

func collectRoutes(rows pgx.Rows) ([]domain.Route, error) {
	defer rows.Close()
	out := make([]domain.Route, 0)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}
	return out, nil
}

func scanRoute(row rowScanner) (domain.Route, error) {
	var (
		rt     domain.Route
		status string
	)
	err := row.Scan(&rt.ID, &rt.DriverID, &rt.Name, &rt.DeliveryIDs, &rt.StartAt, &rt.EndAt,
		&rt.TotalDistance, &rt.TotalMinutes, &rt.EstimatedArrival, &status, &rt.CurrentStop,
		&rt.CompletedDeliveries)
	if err != nil {
		return domain.Route{}, err
	}
	rt.Status = domain.RouteStatus(status)
	rt.StartAt = rt.StartAt.UTC()
	rt.EstimatedArrival = rt.EstimatedArrival.UTC()
	rt.EndAt = utcPtr(rt.EndAt)
	return rt, nil
}
