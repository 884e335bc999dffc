package domain

import (
	"regexp"
	"time"
)

type (
	// DriverStatus represents the status of a driver.
	DriverStatus string
	// VehicleType represents the vehicle a driver uses.
	VehicleType string
)

// List of possible driver statuses
const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverBreak     DriverStatus = "break"
	DriverOffDuty   DriverStatus = "off-duty"
)

// List of possible vehicle types
const (
	VehicleVan     VehicleType = "van"
	VehicleCar     VehicleType = "car"
	VehicleScooter VehicleType = "scooter"
	VehicleBike    VehicleType = "bike"
)

var allowedDriverStatuses = [...]DriverStatus{
	DriverAvailable, DriverBusy, DriverBreak, DriverOffDuty,
}

var allowedVehicleTypes = [...]VehicleType{
	VehicleVan, VehicleCar, VehicleScooter, VehicleBike,
}

// Valid checks if the DriverStatus is valid
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the VehicleType is valid
func (t VehicleType) Valid() bool {
	for _, v := range allowedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Location is a last-known driver position.
type Location struct {
	Lat float64
	Lng float64
	At  time.Time
}

// Driver is a delivery driver attached to a distribution center.
type Driver struct {
	ID              int64
	CenterID        int64
	Name            string
	Phone           string
	Email           string
	VehicleType     VehicleType
	VehiclePlate    string
	Status          DriverStatus
	Location        *Location
	TodayDeliveries int
	TotalDeliveries int
	Rating          float64
	Active          bool
}

// DriverStatusUpdate carries a status change and an optional new location.
type DriverStatusUpdate struct {
	ID       int64
	Status   DriverStatus
	Location *Location
}

// DriverFilter narrows driver listings. A nil field means "any".
type DriverFilter struct {
	CenterID    *int64
	Status      *DriverStatus
	VehicleType *VehicleType
}

// DriverStats summarizes a driver listing.
type DriverStats struct {
	Total                int
	Available            int
	Busy                 int
	OffDuty              int
	AvgRating            float64
	TotalDeliveriesToday int
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+?[0-9(][0-9()\- ]{6,19}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
