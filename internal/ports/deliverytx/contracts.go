// Package deliverytx declares the transactional storage port shared by the
// delivery and dispatch services.
package deliverytx

import (
	"context"

	"shipping-allocation-engine/internal/domain"
)

// Repository is the set of operations available inside one transaction.
// The *ForUpdate methods take a row lock held until the transaction ends,
// and return nil, nil when the row does not exist.
type Repository interface {
	GetZone(ctx context.Context, id int64) (*domain.Zone, error)

	NextDeliveryID(ctx context.Context) (int64, error)
	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error)
	GetDeliveriesForUpdate(ctx context.Context, ids []int64) ([]domain.Delivery, error)
	SaveDeliveryStatus(ctx context.Context, d *domain.Delivery) error
	AttachToRoute(ctx context.Context, routeID, driverID int64, deliveryIDs []int64) error

	GetDriverForUpdate(ctx context.Context, id int64) (*domain.Driver, error)
	FindAvailableDriverForUpdate(ctx context.Context, centerID int64) (*domain.Driver, error)
	UpdateDriverStatus(ctx context.Context, id int64, status domain.DriverStatus, loc *domain.Location) error
	AddDriverDeliveries(ctx context.Context, id int64, n int) error

	InsertRoute(ctx context.Context, r *domain.Route) error
	GetRouteForUpdate(ctx context.Context, id int64) (*domain.Route, error)
	SaveRouteProgress(ctx context.Context, r *domain.Route) error
}

// Runner runs fn inside a transaction, committing when fn returns nil.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
