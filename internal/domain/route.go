package domain

import "time"

// RouteStatus represents the state of a route.
type RouteStatus string

// List of possible route statuses
const (
	RoutePlanned   RouteStatus = "planned"
	RouteActive    RouteStatus = "active"
	RouteCompleted RouteStatus = "completed"
)

// Valid checks if the RouteStatus is valid
func (s RouteStatus) Valid() bool {
	return s == RoutePlanned || s == RouteActive || s == RouteCompleted
}

// Route is an ordered run of deliveries for one driver.
type Route struct {
	ID                  int64
	DriverID            int64
	Name                string
	DeliveryIDs         []int64
	StartAt             time.Time
	EndAt               *time.Time
	TotalDistance       float64
	TotalMinutes        int
	EstimatedArrival    time.Time
	Status              RouteStatus
	CurrentStop         int
	CompletedDeliveries int
}

// Remaining returns the number of stops not completed yet.
func (r Route) Remaining() int {
	return len(r.DeliveryIDs) - r.CompletedDeliveries
}

// StopCompletion reports a finished stop. Stop is the index the reporter saw
// as current; a nil Stop skips the check.
type StopCompletion struct {
	RouteID int64
	Stop    *int
}

// RoutePlan is a request to build a route. DriverID 0 lets the planner pick a driver.
type RoutePlan struct {
	DeliveryIDs []int64
	DriverID    int64
	StartAt     time.Time
}

// RouteFilter narrows route listings. A nil field means "any".
type RouteFilter struct {
	DriverID *int64
	Status   *RouteStatus
}
