package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
)

const driverColumns = `id, center_id, name, phone, email, vehicle_type, vehicle_plate, status,
	lat, lng, location_at, today_deliveries, total_deliveries, rating, active`

// DriverRepo represents driver repository.
type DriverRepo struct {
	db *pgxpool.Pool
}

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo {
	return &DriverRepo{db: db}
}

// GetDriver returns the driver or nil when it does not exist.
func (r *DriverRepo) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

// ListDrivers returns drivers matching the filter ordered by id.
func (r *DriverRepo) ListDrivers(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, error) {
	var w where
	if f.CenterID != nil {
		w.add("center_id = $%d", *f.CenterID)
	}
	if f.Status != nil {
		w.add("status = $%d", string(*f.Status))
	}
	if f.VehicleType != nil {
		w.add("vehicle_type = $%d", string(*f.VehicleType))
	}

	rows, err := r.db.Query(ctx, `SELECT `+driverColumns+` FROM drivers`+w.String()+` ORDER BY id ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Driver, 0)
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drivers: %w", err)
	}
	return out, nil
}

// CreateDriver inserts a driver and sets its ID. A duplicate phone is a conflict.
func (r *DriverRepo) CreateDriver(ctx context.Context, d *domain.Driver) error {
	lat, lng, at := locationArgs(d.Location)
	err := r.db.QueryRow(ctx, `
		INSERT INTO drivers (center_id, name, phone, email, vehicle_type, vehicle_plate, status,
			lat, lng, location_at, rating, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, d.CenterID, d.Name, d.Phone, d.Email, string(d.VehicleType), d.VehiclePlate, string(d.Status),
		lat, lng, at, d.Rating, d.Active,
	).Scan(&d.ID)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func scanDriver(row rowScanner) (domain.Driver, error) {
	var (
		d               domain.Driver
		vehicle, status string
		lat, lng        *float64
		locationAt      *time.Time
	)
	err := row.Scan(&d.ID, &d.CenterID, &d.Name, &d.Phone, &d.Email, &vehicle, &d.VehiclePlate, &status,
		&lat, &lng, &locationAt, &d.TodayDeliveries, &d.TotalDeliveries, &d.Rating, &d.Active)
	if err != nil {
		return domain.Driver{}, err
	}
	d.VehicleType = domain.VehicleType(vehicle)
	d.Status = domain.DriverStatus(status)
	if lat != nil && lng != nil {
		loc := &domain.Location{Lat: *lat, Lng: *lng}
		if locationAt != nil {
			loc.At = locationAt.UTC()
		}
		d.Location = loc
	}
	return d, nil
}

func locationArgs(loc *domain.Location) (lat, lng *float64, at *time.Time) {
	if loc == nil {
		return nil, nil, nil
	}
	la, ln, t := loc.Lat, loc.Lng, loc.At
	return &la, &ln, &t
}
