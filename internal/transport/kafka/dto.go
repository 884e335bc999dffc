package kafka

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/service/events"
)

// EventDTO is the wire form of a field event.
type EventDTO struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	DeliveryID int64     `json:"delivery_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	DriverID   *int64    `json:"driver_id,omitempty"`
	PhotoProof *string   `json:"photo_proof,omitempty"`
	Signature  *string   `json:"signature,omitempty"`
	RouteID    int64     `json:"route_id,omitempty"`
	Stop       *int      `json:"stop,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to events.Event.
func ToDomain(dto EventDTO) (events.Event, error) {
	id, err := uuid.Parse(strings.TrimSpace(dto.EventID))
	if err != nil {
		return events.Event{}, Permanent(fmt.Errorf("event_id: %w", err))
	}
	ev := events.Event{
		ID:         id,
		Type:       strings.TrimSpace(dto.Type),
		DeliveryID: dto.DeliveryID,
		Status:     strings.TrimSpace(dto.Status),
		DriverID:   dto.DriverID,
		PhotoProof: dto.PhotoProof,
		Signature:  dto.Signature,
		RouteID:    dto.RouteID,
		Stop:       dto.Stop,
		OccurredAt: dto.OccurredAt.UTC(),
	}
	switch ev.Type {
	case events.TypeDeliveryStatus:
		if ev.DeliveryID <= 0 {
			return events.Event{}, Permanent(fmt.Errorf("delivery_id must be > 0"))
		}
	case events.TypeRouteStopCompleted:
		if ev.RouteID <= 0 {
			return events.Event{}, Permanent(fmt.Errorf("route_id must be > 0"))
		}
		if ev.Stop == nil || *ev.Stop < 0 {
			return events.Event{}, Permanent(fmt.Errorf("stop must be >= 0"))
		}
	}
	return ev, nil
}

// StatusChangeDTO is the published form of a committed status change.
type StatusChangeDTO struct {
	EventID        string    `json:"event_id"`
	DeliveryID     int64     `json:"delivery_id"`
	TrackingNumber string    `json:"tracking_number"`
	CenterID       int64     `json:"center_id"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	DriverID       *int64    `json:"driver_id,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}

func fromStatusChange(id uuid.UUID, c domain.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		EventID:        id.String(),
		DeliveryID:     c.Delivery.ID,
		TrackingNumber: c.Delivery.TrackingNumber,
		CenterID:       c.Delivery.CenterID,
		From:           string(c.From),
		To:             string(c.Delivery.Status),
		DriverID:       c.Delivery.DriverID,
		ChangedAt:      c.At.UTC(),
	}
}

func deliveryKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
