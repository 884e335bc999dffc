package domain

import (
	"slices"
	"time"
)

// ZoneType is the urgency tier a delivery zone serves.
type ZoneType string

// List of zone types
const (
	ZoneSameDay  ZoneType = "same-day"
	ZoneTwoHour  ZoneType = "2-hour"
	ZoneFourHour ZoneType = "4-hour"
	ZoneNextDay  ZoneType = "next-day"
)

var allowedZoneTypes = [...]ZoneType{
	ZoneSameDay, ZoneTwoHour, ZoneFourHour, ZoneNextDay,
}

// Valid checks if the ZoneType is valid
func (t ZoneType) Valid() bool {
	for _, v := range allowedZoneTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Zone is a local-delivery service area of a distribution center.
type Zone struct {
	ID               int64
	CenterID         int64
	Name             string
	Type             ZoneType
	ZipCodes         []string
	BasePrice        float64
	MaxDistance      float64
	EstimatedMinutes int
	// Priority ranks zones covering the same code, lower is preferred.
	Priority int
	Active   bool
}

// Covers reports whether the zone serves the postal code.
func (z Zone) Covers(zip string) bool {
	return slices.Contains(z.ZipCodes, zip)
}

// ZoneFilter narrows zone listings. A nil field means "any".
type ZoneFilter struct {
	CenterID *int64
	Type     *ZoneType
	Active   *bool
}

// FallbackTier is the slower tier suggested when no zone covers a code.
type FallbackTier struct {
	Type             ZoneType
	EstimatedMinutes int
	BasePrice        float64
}

// CoverageVerdict is the outcome of a zone coverage check.
type CoverageVerdict struct {
	Covered           bool
	PostalCode        string
	Zone              *Zone
	EstimatedDelivery time.Time
	Fee               float64
	Fallback          *FallbackTier
	Message           string
}
