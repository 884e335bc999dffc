package rating

import (
	"cmp"
	"slices"

	"shipping-allocation-engine/internal/domain"
)

// Rank sorts options in place. The sort is stable so catalog order breaks
// remaining ties.
func Rank(options []domain.ShippingOption, c domain.Criterion) {
	slices.SortStableFunc(options, compareFor(c))
}

func compareFor(c domain.Criterion) func(a, b domain.ShippingOption) int {
	switch c {
	case domain.CriterionFastest:
		return func(a, b domain.ShippingOption) int {
			return cmp.Compare(a.TransitDays, b.TransitDays)
		}
	case domain.CriterionMostReliable:
		return func(a, b domain.ShippingOption) int {
			return cmp.Compare(b.Reliability, a.Reliability)
		}
	default:
		return func(a, b domain.ShippingOption) int {
			if a.FreeShippingApplied != b.FreeShippingApplied {
				if a.FreeShippingApplied {
					return -1
				}
				return 1
			}
			if r := cmp.Compare(a.FinalCost, b.FinalCost); r != 0 {
				return r
			}
			return cmp.Compare(a.TransitDays, b.TransitDays)
		}
	}
}
