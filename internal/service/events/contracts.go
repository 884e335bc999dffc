//go:generate mockgen -source=contracts.go -destination=events_mocks_test.go -package=events_test

package events

import (
	"context"

	"shipping-allocation-engine/internal/domain"
)

// DeliveryPort is the delivery operation driven by status events.
type DeliveryPort interface {
	UpdateStatus(ctx context.Context, u domain.StatusUpdate) (domain.StatusChange, error)
}

// RoutePort is the dispatch operation driven by stop events.
type RoutePort interface {
	CompleteStop(ctx context.Context, c domain.StopCompletion) (domain.Route, error)
}
