package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shipping-allocation-engine/internal/domain"
)

const zoneColumns = `id, center_id, name, zone_type, zip_codes, base_price, max_distance,
	estimated_minutes, priority, active`

// ZoneRepo represents delivery zone repository.
type ZoneRepo struct {
	db *pgxpool.Pool
}

// NewZoneRepo creates a new ZoneRepo.
func NewZoneRepo(db *pgxpool.Pool) *ZoneRepo {
	return &ZoneRepo{db: db}
}

// ListZones returns zones matching the filter ordered by priority and id.
func (r *ZoneRepo) ListZones(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error) {
	var w where
	if f.CenterID != nil {
		w.add("center_id = $%d", *f.CenterID)
	}
	if f.Type != nil {
		w.add("zone_type = $%d", string(*f.Type))
	}
	if f.Active != nil {
		w.add("active = $%d", *f.Active)
	}

	rows, err := r.db.Query(ctx, `SELECT `+zoneColumns+` FROM delivery_zones`+w.String()+` ORDER BY priority ASC, id ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query zones: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Zone, 0)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate zones: %w", err)
	}
	return out, nil
}

// CreateZone inserts a zone and sets its ID.
func (r *ZoneRepo) CreateZone(ctx context.Context, z *domain.Zone) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO delivery_zones (center_id, name, zone_type, zip_codes, base_price, max_distance,
			estimated_minutes, priority, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, z.CenterID, z.Name, string(z.Type), z.ZipCodes, z.BasePrice, z.MaxDistance,
		z.EstimatedMinutes, z.Priority, z.Active,
	).Scan(&z.ID)
	if err != nil {
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

func getZone(ctx context.Context, q pgxQuerier, id int64) (*domain.Zone, error) {
	z, err := scanZone(q.QueryRow(ctx, `SELECT `+zoneColumns+` FROM delivery_zones WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return &z, nil
}

func scanZone(row rowScanner) (domain.Zone, error) {
	var (
		z        domain.Zone
		zoneType string
	)
	err := row.Scan(&z.ID, &z.CenterID, &z.Name, &zoneType, &z.ZipCodes, &z.BasePrice, &z.MaxDistance,
		&z.EstimatedMinutes, &z.Priority, &z.Active)
	z.Type = domain.ZoneType(zoneType)
	return z, err
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
