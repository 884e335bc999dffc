package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

const deliveryColumns = `id, tracking_number, center_id, driver_id, zone_id, route_id, customer_name,
	customer_phone, address, zip_code, delivery_type, package_count, total_weight, fee, status,
	held_status, scheduled_at, estimated_at, picked_up_at, delivered_at, instructions, photo_proof, signature`

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetDelivery returns the delivery or nil when it does not exist.
func (r *DeliveryRepo) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return &d, nil
}

// ListDeliveries returns deliveries matching the filter, newest schedule first.
func (r *DeliveryRepo) ListDeliveries(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error) {
	var w where
	if f.CenterID != nil {
		w.add("center_id = $%d", *f.CenterID)
	}
	if f.Status != nil {
		w.add("status = $%d", string(*f.Status))
	}
	if f.Type != nil {
		w.add("delivery_type = $%d", string(*f.Type))
	}
	if f.DriverID != nil {
		w.add("driver_id = $%d", *f.DriverID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries`+w.String()+` ORDER BY scheduled_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	return collectDeliveries(rows)
}

func collectDeliveries(rows pgx.Rows) ([]domain.Delivery, error) {
	defer rows.Close()
	out := make([]domain.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return out, nil
}

func scanDelivery(row rowScanner) (domain.Delivery, error) {
	var (
		d                          domain.Delivery
		deliveryType, status, held string
		pickedUp, delivered        *time.Time
	)
	err := row.Scan(&d.ID, &d.TrackingNumber, &d.CenterID, &d.DriverID, &d.ZoneID, &d.RouteID,
		&d.CustomerName, &d.CustomerPhone, &d.Address, &d.ZipCode, &deliveryType, &d.PackageCount,
		&d.TotalWeight, &d.Fee, &status, &held, &d.ScheduledAt, &d.EstimatedAt, &pickedUp, &delivered,
		&d.Instructions, &d.PhotoProof, &d.Signature)
	if err != nil {
		return domain.Delivery{}, err
	}
	d.Type = domain.ZoneType(deliveryType)
	d.Status = domain.DeliveryStatus(status)
	d.HeldStatus = domain.DeliveryStatus(held)
	d.ScheduledAt = d.ScheduledAt.UTC()
	d.EstimatedAt = d.EstimatedAt.UTC()
	d.PickedUpAt = utcPtr(pickedUp)
	d.DeliveredAt = utcPtr(delivered)
	return d, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
