package domain

import "time"

// ShippingOption is one rated carrier/service combination.
type ShippingOption struct {
	CarrierCode         string
	CarrierName         string
	ServiceCode         string
	ServiceName         string
	TransitDays         int
	OriginalCost        float64
	FinalCost           float64
	FreeShippingApplied bool
	FreeShippingSource  string
	Reliability         float64
	Features            []string
	DeliveryDate        time.Time
	Savings             float64
}

// Analysis is the summary of a single optimization run.
type Analysis struct {
	TotalOptions     int
	AverageCost      float64
	PotentialSavings float64
	Criterion        Criterion
	Distance         float64
	IsLocal          bool
}

// OptimizationResult is the ranked output for one order.
// Recommended is nil when no service is compatible with the urgency band.
type OptimizationResult struct {
	Recommended *ShippingOption
	Options     []ShippingOption
	Offer       *FreeShippingOffer
	Analysis    Analysis
}

// OrderAnalysis is the per-order result of a batch run.
type OrderAnalysis struct {
	OrderID string
	Result  OptimizationResult
}

// BatchSummary aggregates a batch of optimization results.
type BatchSummary struct {
	TotalOrders         int
	TotalSavings        float64
	AverageDeliveryDays float64
	FreeShippingApplied int
}

// BatchResult is the output of AnalyzeBatch.
type BatchResult struct {
	Orders  []OrderAnalysis
	Summary BatchSummary
}

// BatchOrder is one order of a batch run with its own urgency and criterion.
type BatchOrder struct {
	Order     OrderContext
	Urgency   UrgencyBand
	Criterion Criterion
}
