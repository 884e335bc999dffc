package domain

// Carrier represents a shipping company and its capability flags.
type Carrier struct {
	Code                  string
	Name                  string
	Active                bool
	SupportsSameDay       bool
	SupportsNextDay       bool
	SupportsInternational bool
	CostMultiplier        float64
	Reliability           float64
}

// Service is a shipping product offered by exactly one carrier.
type Service struct {
	Code        string
	Name        string
	CarrierCode string
	TransitDays int
	BaseCost    float64
	// Ground marks the ground/economy class that pays the distance multiplier.
	Ground bool
	// Priority marks premium services that get priority handling.
	Priority bool
}
