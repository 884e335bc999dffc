package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeDeliveryStatus     = "delivery.status"
	TypeRouteStopCompleted = "route.stop_completed"
)

// Event is a single field event reported by drivers' devices.
type Event struct {
	ID         uuid.UUID
	Type       string
	DeliveryID int64
	Status     string
	DriverID   *int64
	PhotoProof *string
	Signature  *string
	RouteID    int64
	Stop       *int
	OccurredAt time.Time
}
