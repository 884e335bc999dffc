package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ deliverytx.Repository = (*TxRepo)(nil)

// GetZone returns the zone or nil when it does not exist.
func (r *TxRepo) GetZone(ctx context.Context, id int64) (*domain.Zone, error) {
	return getZone(ctx, r.tx, id)
}

// NextDeliveryID reserves the next delivery id so the tracking number can be
// derived before the insert.
func (r *TxRepo) NextDeliveryID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.tx.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence('deliveries', 'id'))`).Scan(&id); err != nil {
		return 0, fmt.Errorf("next delivery id: %w", err)
	}
	return id, nil
}

// InsertDelivery inserts d with its preassigned ID.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO deliveries (id, tracking_number, center_id, driver_id, zone_id, route_id,
			customer_name, customer_phone, address, zip_code, delivery_type, package_count,
			total_weight, fee, status, held_status, scheduled_at, estimated_at, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, d.ID, d.TrackingNumber, d.CenterID, d.DriverID, d.ZoneID, d.RouteID,
		d.CustomerName, d.CustomerPhone, d.Address, d.ZipCode, string(d.Type), d.PackageCount,
		d.TotalWeight, d.Fee, string(d.Status), string(d.HeldStatus), d.ScheduledAt, d.EstimatedAt, d.Instructions,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetDeliveryForUpdate locks and returns the delivery.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	d, err := scanDelivery(r.tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery for update: %w", err)
	}
	return &d, nil
}

// GetDeliveriesForUpdate locks the given deliveries in id order. Missing ids are
// simply absent from the result.
func (r *TxRepo) GetDeliveriesForUpdate(ctx context.Context, ids []int64) ([]domain.Delivery, error) {
	rows, err := r.tx.Query(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("query deliveries for update: %w", err)
	}
	return collectDeliveries(rows)
}

// SaveDeliveryStatus persists the status fields of d.
func (r *TxRepo) SaveDeliveryStatus(ctx context.Context, d *domain.Delivery) error {
	tag, err := r.tx.Exec(ctx, `
		UPDATE deliveries
		SET status = $2, held_status = $3, driver_id = $4, picked_up_at = $5, delivered_at = $6,
			photo_proof = $7, signature = $8, updated_at = now()
		WHERE id = $1
	`, d.ID, string(d.Status), string(d.HeldStatus), d.DriverID, d.PickedUpAt, d.DeliveredAt,
		d.PhotoProof, d.Signature,
	)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AttachToRoute assigns the route and driver to the deliveries.
func (r *TxRepo) AttachToRoute(ctx context.Context, routeID, driverID int64, deliveryIDs []int64) error {
	tag, err := r.tx.Exec(ctx, `
		UPDATE deliveries SET route_id = $1, driver_id = $2, updated_at = now()
		WHERE id = ANY($3)
	`, routeID, driverID, deliveryIDs)
	if err != nil {
		return fmt.Errorf("attach deliveries to route: %w", err)
	}
	if int(tag.RowsAffected()) != len(deliveryIDs) {
		return apperr.ErrNotFound
	}
	return nil
}

// GetDriverForUpdate locks and returns the driver.
func (r *TxRepo) GetDriverForUpdate(ctx context.Context, id int64) (*domain.Driver, error) {
	d, err := scanDriver(r.tx.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver for update: %w", err)
	}
	return &d, nil
}

// FindAvailableDriverForUpdate locks the least loaded available driver of the center.
func (r *TxRepo) FindAvailableDriverForUpdate(ctx context.Context, centerID int64) (*domain.Driver, error) {
	d, err := scanDriver(r.tx.QueryRow(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE status = 'available' AND active AND center_id = $1
		ORDER BY today_deliveries ASC, id ASC
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`, centerID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find available driver: %w", err)
	}
	return &d, nil
}

// UpdateDriverStatus sets the status and, when loc is not nil, the location.
func (r *TxRepo) UpdateDriverStatus(ctx context.Context, id int64, status domain.DriverStatus, loc *domain.Location) error {
	query := `UPDATE drivers SET status = $2, updated_at = now() WHERE id = $1`
	args := []any{id, string(status)}
	if loc != nil {
		query = `UPDATE drivers SET status = $2, lat = $3, lng = $4, location_at = $5, updated_at = now() WHERE id = $1`
		args = append(args, loc.Lat, loc.Lng, loc.At)
	}

	tag, err := r.tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update driver status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AddDriverDeliveries adds n to the driver's today and total counters.
func (r *TxRepo) AddDriverDeliveries(ctx context.Context, id int64, n int) error {
	_, err := r.tx.Exec(ctx, `
		UPDATE drivers
		SET today_deliveries = today_deliveries + $2, total_deliveries = total_deliveries + $2, updated_at = now()
		WHERE id = $1
	`, id, n)
	if err != nil {
		return fmt.Errorf("add driver deliveries: %w", err)
	}
	return nil
}

// InsertRoute inserts a route and sets its ID.
func (r *TxRepo) InsertRoute(ctx context.Context, rt *domain.Route) error {
	err := r.tx.QueryRow(ctx, `
		INSERT INTO delivery_routes (driver_id, name, delivery_ids, start_at, end_at, total_distance,
			total_minutes, estimated_arrival, status, current_stop, completed_deliveries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, rt.DriverID, rt.Name, rt.DeliveryIDs, rt.StartAt, rt.EndAt, rt.TotalDistance,
		rt.TotalMinutes, rt.EstimatedArrival, string(rt.Status), rt.CurrentStop, rt.CompletedDeliveries,
	).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

// GetRouteForUpdate locks and returns the route.
func (r *TxRepo) GetRouteForUpdate(ctx context.Context, id int64) (*domain.Route, error) {
	rt, err := scanRoute(r.tx.QueryRow(ctx, `SELECT `+routeColumns+` FROM delivery_routes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route for update: %w", err)
	}
	return &rt, nil
}

// SaveRouteProgress persists the progress fields of rt.
func (r *TxRepo) SaveRouteProgress(ctx context.Context, rt *domain.Route) error {
	tag, err := r.tx.Exec(ctx, `
		UPDATE delivery_routes
		SET status = $2, current_stop = $3, completed_deliveries = $4, end_at = $5
		WHERE id = $1
	`, rt.ID, string(rt.Status), rt.CurrentStop, rt.CompletedDeliveries, rt.EndAt)
	if err != nil {
		return fmt.Errorf("update route progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
