package domain

import (
	"fmt"
	"time"
)

// Delivery is a zone-scoped local delivery.
type Delivery struct {
	ID             int64
	TrackingNumber string
	CenterID       int64
	DriverID       *int64
	ZoneID         int64
	RouteID        *int64
	CustomerName   string
	CustomerPhone  string
	Address        string
	ZipCode        string
	Type           ZoneType
	PackageCount   int
	TotalWeight    float64
	Fee            float64
	Status         DeliveryStatus
	// HeldStatus is the progress status kept while the delivery is in exception.
	HeldStatus   DeliveryStatus
	ScheduledAt  time.Time
	EstimatedAt  time.Time
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
	Instructions string
	PhotoProof   *string
	Signature    *string
}

// DeliveryRequest carries the fields needed to schedule a delivery.
type DeliveryRequest struct {
	CenterID      int64
	ZoneID        int64
	CustomerName  string
	CustomerPhone string
	Address       string
	ZipCode       string
	Type          ZoneType
	PackageCount  int
	TotalWeight   float64
	ScheduledAt   time.Time
	Instructions  string
}

// StatusUpdate is a requested delivery status change with optional proof artifacts.
type StatusUpdate struct {
	DeliveryID int64
	Status     DeliveryStatus
	DriverID   *int64
	PhotoProof *string
	Signature  *string
}

// DeliveryFilter narrows delivery listings. A nil field means "any".
type DeliveryFilter struct {
	CenterID *int64
	Status   *DeliveryStatus
	Type     *ZoneType
	DriverID *int64
}

// DeliveryStats summarizes a delivery listing.
type DeliveryStats struct {
	Total        int
	Scheduled    int
	InTransit    int
	Delivered    int
	Failed       int
	TotalRevenue float64
}

// StatusChange is the committed outcome of a status update.
type StatusChange struct {
	Delivery Delivery
	From     DeliveryStatus
	At       time.Time
}

// TrackingNumber formats the public tracking number of a delivery id.
func TrackingNumber(id int64) string {
	return fmt.Sprintf("SPR-DEL-%03d", id)
}
