package rating

import (
	"strconv"

	"shipping-allocation-engine/internal/domain"
)

// ZipDistance maps the numeric gap between two postal codes to a distance band.
func ZipDistance(origin, destination string) float64 {
	a, errA := strconv.Atoi(origin)
	b, errB := strconv.Atoi(destination)
	if errA != nil || errB != nil {
		return 1000
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 10:
		return 25
	case diff <= 100:
		return 150
	case diff <= 1000:
		return 500
	default:
		return 1000
	}
}

func orderDistance(o domain.OrderContext) float64 {
	if o.Distance != nil {
		return *o.Distance
	}
	return ZipDistance(o.OriginZip, o.DestinationZip)
}
