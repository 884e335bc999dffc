// Package rating ranks carrier services for an order.
//
// Everything here is pure: the engine reads one catalog snapshot per call
// and never touches storage or the network.
package rating

import (
	"context"
	"math"
	"time"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/domain"
)

// Feature labels attached to options.
const (
	FeatureTracking  = "Tracking included"
	FeatureSameDay   = "Same-day delivery"
	FeatureNextDay   = "Next-day delivery"
	FeatureReliable  = "Highly reliable"
	FeaturePriority  = "Priority handling"
	FeatureSignature = "Signature required"
)

const (
	reliableThreshold  = 0.95
	signatureCostAbove = 30.0
	defaultCutoffHour  = 18
	defaultLocalRadius = 50.0
)

// CatalogSource hands out the current catalog snapshot.
type CatalogSource interface {
	Current() *catalog.Catalog
}

// Config holds engine tunables.
type Config struct {
	Location    *time.Location
	CutoffHour  int
	LocalRadius float64
}

// Engine ranks shipping options.
type Engine struct {
	catalog     CatalogSource
	loc         *time.Location
	cutoffHour  int
	localRadius float64
	now         func() time.Time
}

// NewEngine creates an Engine over the given catalog source.
func NewEngine(src CatalogSource, cfg Config) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.CutoffHour <= 0 || cfg.CutoffHour > 23 {
		cfg.CutoffHour = defaultCutoffHour
	}
	if cfg.LocalRadius <= 0 {
		cfg.LocalRadius = defaultLocalRadius
	}
	return &Engine{
		catalog:     src,
		loc:         cfg.Location,
		cutoffHour:  cfg.CutoffHour,
		localRadius: cfg.LocalRadius,
		now:         time.Now,
	}
}

// WithClock replaces the clock used for delivery dates.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	if now != nil {
		e.now = now
	}
	return e
}

// Snapshot pins the catalog and the clock reading of one quote.
type Snapshot struct {
	Catalog *catalog.Catalog
	Now     time.Time
}

// Version returns the catalog version the snapshot was taken from.
func (s Snapshot) Version() string { return s.Catalog.Version }

// Day returns the engine-local calendar date of the snapshot.
func (s Snapshot) Day() string { return s.Now.Format(time.DateOnly) }

// Snapshot takes the current catalog and engine-local time.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Catalog: e.catalog.Current(), Now: e.now().In(e.loc)}
}

// RateOptimalShipping rates every compatible service for the order and ranks them.
// An urgency band no service satisfies yields an empty result, not an error.
func (e *Engine) RateOptimalShipping(
	ctx context.Context,
	order domain.OrderContext,
	urgency domain.UrgencyBand,
	criterion domain.Criterion,
) (domain.OptimizationResult, error) {
	return e.Rate(ctx, e.Snapshot(), order, urgency, criterion)
}

// Rate is RateOptimalShipping against a snapshot the caller already holds.
func (e *Engine) Rate(
	ctx context.Context,
	snap Snapshot,
	order domain.OrderContext,
	urgency domain.UrgencyBand,
	criterion domain.Criterion,
) (domain.OptimizationResult, error) {
	urgency = urgency.OrDefault()
	criterion = criterion.OrDefault()
	if err := validateOrder(order, urgency, criterion); err != nil {
		return domain.OptimizationResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.OptimizationResult{}, err
	}

	cat := snap.Catalog
	distance := orderDistance(order)
	local := distance <= e.localRadius
	now := snap.Now
	offer := ResolveOffer(cat.Offers, order)

	options := make([]domain.ShippingOption, 0, len(cat.Services))
	for _, svc := range cat.Services {
		carrier, ok := cat.Carrier(svc.CarrierCode)
		if !ok || !candidate(carrier, svc, urgency, local) {
			continue
		}
		options = append(options, e.option(carrier, svc, order, distance, offer, now))
	}

	Rank(options, criterion)

	result := domain.OptimizationResult{
		Options: options,
		Offer:   offer,
		Analysis: domain.Analysis{
			TotalOptions: len(options),
			AverageCost:  averageCost(options),
			Criterion:    criterion,
			Distance:     distance,
			IsLocal:      local,
		},
	}
	if len(options) > 0 {
		top := options[0]
		result.Recommended = &top
		if offer != nil {
			result.Analysis.PotentialSavings = top.Savings
		}
	}
	return result, nil
}

func (e *Engine) option(
	carrier domain.Carrier,
	svc domain.Service,
	order domain.OrderContext,
	distance float64,
	offer *domain.FreeShippingOffer,
	now time.Time,
) domain.ShippingOption {
	base := Cost(svc, order.Weight, distance, order.Dimensions)
	adjusted := roundCents(base * carrier.CostMultiplier)

	opt := domain.ShippingOption{
		CarrierCode:  carrier.Code,
		CarrierName:  carrier.Name,
		ServiceCode:  svc.Code,
		ServiceName:  svc.Name,
		TransitDays:  svc.TransitDays,
		OriginalCost: adjusted,
		FinalCost:    adjusted,
		Reliability:  carrier.Reliability,
		Features:     features(carrier, svc),
		DeliveryDate: ProjectDeliveryDate(now, svc.TransitDays, e.cutoffHour),
	}
	if offer != nil && offer.AppliesTo(svc.Code) {
		opt.FinalCost = 0
		opt.FreeShippingApplied = true
		opt.FreeShippingSource = offer.Source()
		opt.Savings = adjusted
	}
	return opt
}

func candidate(c domain.Carrier, svc domain.Service, urgency domain.UrgencyBand, local bool) bool {
	if !c.Active {
		return false
	}
	if svc.TransitDays == 0 && !c.SupportsSameDay {
		return false
	}
	if svc.TransitDays == 1 && !c.SupportsNextDay {
		return false
	}

	switch urgency {
	case domain.UrgencySameDay:
		return svc.TransitDays == 0 && local
	case domain.UrgencyNextDay:
		return svc.TransitDays <= 1
	case domain.UrgencyEconomy:
		return svc.TransitDays >= 3
	default:
		return svc.TransitDays <= 4
	}
}

func features(c domain.Carrier, svc domain.Service) []string {
	out := []string{FeatureTracking}
	switch svc.TransitDays {
	case 0:
		out = append(out, FeatureSameDay)
	case 1:
		out = append(out, FeatureNextDay)
	}
	if c.Reliability > reliableThreshold {
		out = append(out, FeatureReliable)
	}
	if svc.Priority {
		out = append(out, FeaturePriority)
	}
	if svc.BaseCost > signatureCostAbove {
		out = append(out, FeatureSignature)
	}
	return out
}

func averageCost(options []domain.ShippingOption) float64 {
	if len(options) == 0 {
		return 0
	}
	var sum float64
	for _, o := range options {
		sum += o.FinalCost
	}
	return roundCents(sum / float64(len(options)))
}

func validateOrder(o domain.OrderContext, urgency domain.UrgencyBand, criterion domain.Criterion) error {
	if !domain.ValidZip(o.OriginZip) {
		return apperr.Validation("origin_zip", "must be a 5-digit postal code")
	}
	if !domain.ValidZip(o.DestinationZip) {
		return apperr.Validation("destination_zip", "must be a 5-digit postal code")
	}
	if !finite(o.Weight) || o.Weight < 0 {
		return apperr.Validation("weight", "must be >= 0")
	}
	d := o.Dimensions
	if !positive(d.Length) || !positive(d.Width) || !positive(d.Height) {
		return apperr.Validation("dimensions", "all sides must be > 0")
	}
	if !finite(o.OrderValue) || o.OrderValue < 0 {
		return apperr.Validation("order_value", "must be >= 0")
	}
	if o.Distance != nil && (!finite(*o.Distance) || *o.Distance < 0) {
		return apperr.Validation("distance", "must be >= 0")
	}
	if !urgency.Valid() {
		return apperr.Validation("urgency", "unknown urgency band")
	}
	if !criterion.Valid() {
		return apperr.Validation("criterion", "unknown criterion")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
