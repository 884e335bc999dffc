package domain

type (
	// UrgencyBand is the caller's delivery speed requirement.
	UrgencyBand string
	// Criterion is the ranking criterion for shipping options.
	Criterion string
)

// List of urgency bands
const (
	UrgencySameDay  UrgencyBand = "same_day"
	UrgencyNextDay  UrgencyBand = "next_day"
	UrgencyStandard UrgencyBand = "standard"
	UrgencyEconomy  UrgencyBand = "economy"
)

// List of ranking criteria
const (
	CriterionFastest       Criterion = "fastest"
	CriterionCostEffective Criterion = "cost_effective"
	CriterionMostReliable  Criterion = "most_reliable"
)

// Valid checks if the UrgencyBand is valid
func (u UrgencyBand) Valid() bool {
	switch u {
	case UrgencySameDay, UrgencyNextDay, UrgencyStandard, UrgencyEconomy:
		return true
	default:
		return false
	}
}

// OrDefault returns standard for an empty band.
func (u UrgencyBand) OrDefault() UrgencyBand {
	if u == "" {
		return UrgencyStandard
	}
	return u
}

// Valid checks if the Criterion is valid
func (c Criterion) Valid() bool {
	switch c {
	case CriterionFastest, CriterionCostEffective, CriterionMostReliable:
		return true
	default:
		return false
	}
}

// OrDefault returns cost_effective for an empty criterion.
func (c Criterion) OrDefault() Criterion {
	if c == "" {
		return CriterionCostEffective
	}
	return c
}
