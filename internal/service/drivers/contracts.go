package drivers

import (
	"context"

	"shipping-allocation-engine/internal/domain"
)

// driverRepository defines storage operations required by the business layer.
type driverRepository interface {
	GetDriver(ctx context.Context, id int64) (*domain.Driver, error)
	ListDrivers(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, error)
	CreateDriver(ctx context.Context, d *domain.Driver) error
}
