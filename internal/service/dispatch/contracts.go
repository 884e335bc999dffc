//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

type routeRepository interface {
	WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context, f domain.RouteFilter) ([]domain.Route, error)
}
