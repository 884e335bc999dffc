//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

type deliveryRepository interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error)
	ListDeliveries(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error)
}

// Publisher receives committed status changes.
type Publisher interface {
	PublishStatusChange(ctx context.Context, c domain.StatusChange) error
}
