package rating

import (
	"math"

	"shipping-allocation-engine/internal/domain"
)

const (
	weightSurchargePerUnit = 2.50
	dimDivisor             = 166.0
	dimSurchargePerUnit    = 1.75
	fuelSurcharge          = 1.08

	longHaulDistance = 500.0
	longHaulFactor   = 1.3
	midHaulDistance  = 100.0
	midHaulFactor    = 1.1
)

// Cost is the carrier-independent price of shipping one package with svc.
// Callers validate weight and dimensions.
func Cost(svc domain.Service, weight, distance float64, dims domain.Dimensions) float64 {
	cost := svc.BaseCost
	if weight > 1 {
		cost += (weight - 1) * weightSurchargePerUnit
	}

	if svc.Ground {
		switch {
		case distance > longHaulDistance:
			cost *= longHaulFactor
		case distance > midHaulDistance:
			cost *= midHaulFactor
		}
	}

	if dim := DimensionalWeight(dims); dim > weight {
		cost += (dim - weight) * dimSurchargePerUnit
	}

	return roundCents(cost * fuelSurcharge)
}

// DimensionalWeight is L*W*H/166.
func DimensionalWeight(dims domain.Dimensions) float64 {
	return dims.Volume() / dimDivisor
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
