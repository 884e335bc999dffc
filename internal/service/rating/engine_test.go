package rating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/catalog"
	"shipping-allocation-engine/internal/domain"
)

// Wednesday
var fixedNow = time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)

func newSeedEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Seed()
	require.NoError(t, err)
	return newEngine(c)
}

func newEngine(c *catalog.Catalog) *Engine {
	return NewEngine(catalog.NewStaticStore(c), Config{}).
		WithClock(func() time.Time { return fixedNow })
}

func crossCountry() domain.OrderContext {
	return domain.OrderContext{
		OrderID:        "o-1",
		OriginZip:      "55401",
		DestinationZip: "90210",
		Weight:         2.5,
		Dimensions:     box,
		OrderValue:     80,
	}
}

func TestEngine_CrossCountryStandard(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	res, err := e.RateOptimalShipping(context.Background(), crossCountry(), domain.UrgencyStandard, "")
	require.NoError(t, err)

	require.Nil(t, res.Offer)
	require.Len(t, res.Options, 18)
	require.NotNil(t, res.Recommended)

	top := res.Recommended
	require.Equal(t, "AMZL_STD", top.ServiceCode)
	require.InDelta(t, 12.75, top.FinalCost, 0.001)
	require.Greater(t, top.FinalCost, 0.0)
	require.False(t, top.FreeShippingApplied)
	require.Equal(t, time.Date(2025, 1, 13, 18, 0, 0, 0, time.UTC), top.DeliveryDate)

	for i := 1; i < len(res.Options); i++ {
		require.LessOrEqual(t, res.Options[i-1].FinalCost, res.Options[i].FinalCost)
	}

	a := res.Analysis
	require.Equal(t, 18, a.TotalOptions)
	require.Equal(t, domain.CriterionCostEffective, a.Criterion)
	require.Equal(t, 1000.0, a.Distance)
	require.False(t, a.IsLocal)
	require.InDelta(t, 45.22, a.AverageCost, 0.011)
	require.Zero(t, a.PotentialSavings)
}

func TestEngine_SellerOfferMakesTopFree(t *testing.T) {
	t.Parallel()

	seed, err := catalog.Seed()
	require.NoError(t, err)
	offers := []domain.FreeShippingOffer{{
		ID: 1, OfferedBy: domain.GrantorSeller, EntityID: 7, EntityName: "Lake Street Outfitters",
		Type: domain.OfferMinimumOrder, MinimumOrderValue: 75, Nationwide: true,
		ServiceCodes: []string{"AMZL_STD"}, Active: true,
	}}
	c, err := catalog.New("test", seed.Carriers, seed.Services, offers)
	require.NoError(t, err)

	order := crossCountry()
	order.SellerID = 7

	res, err := newEngine(c).RateOptimalShipping(context.Background(), order, domain.UrgencyStandard, domain.CriterionCostEffective)
	require.NoError(t, err)

	require.NotNil(t, res.Offer)
	top := res.Recommended
	require.NotNil(t, top)
	require.Equal(t, "AMZL_STD", top.ServiceCode)
	require.Zero(t, top.FinalCost)
	require.True(t, top.FreeShippingApplied)
	require.Equal(t, "seller: Lake Street Outfitters", top.FreeShippingSource)
	require.InDelta(t, 12.75, top.OriginalCost, 0.001)
	require.InDelta(t, 12.75, res.Analysis.PotentialSavings, 0.001)
}

func TestEngine_FreeOptionsRankFirst(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	order := crossCountry()
	order.SellerID = 3 // North Loop promotional, USPS_GA + UPS_GND

	res, err := e.RateOptimalShipping(context.Background(), order, domain.UrgencyStandard, domain.CriterionCostEffective)
	require.NoError(t, err)

	seenPaid := false
	free := 0
	for _, o := range res.Options {
		if !o.FreeShippingApplied {
			seenPaid = true
			continue
		}
		free++
		require.False(t, seenPaid, "free option %s ranked after a paid one", o.ServiceCode)
	}
	require.Equal(t, 2, free)
	// equal cost, fewer days first
	require.Equal(t, "USPS_GA", res.Options[0].ServiceCode)
	require.Equal(t, "UPS_GND", res.Options[1].ServiceCode)
	require.InDelta(t, 15.25, res.Analysis.PotentialSavings, 0.001)
}

func TestEngine_UrgencyBands(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	ctx := context.Background()

	local := crossCountry()
	local.DestinationZip = "55406"

	res, err := e.RateOptimalShipping(ctx, local, domain.UrgencySameDay, "")
	require.NoError(t, err)
	require.True(t, res.Analysis.IsLocal)
	require.Len(t, res.Options, 3)
	require.Equal(t, "AMZL_SD", res.Recommended.ServiceCode)
	require.Contains(t, res.Recommended.Features, FeatureSameDay)

	res, err = e.RateOptimalShipping(ctx, crossCountry(), domain.UrgencySameDay, "")
	require.NoError(t, err)
	require.Empty(t, res.Options)
	require.Nil(t, res.Recommended)
	require.Zero(t, res.Analysis.AverageCost)

	res, err = e.RateOptimalShipping(ctx, crossCountry(), domain.UrgencyNextDay, "")
	require.NoError(t, err)
	require.Len(t, res.Options, 8)
	for _, o := range res.Options {
		require.LessOrEqual(t, o.TransitDays, 1)
	}

	res, err = e.RateOptimalShipping(ctx, crossCountry(), domain.UrgencyEconomy, "")
	require.NoError(t, err)
	require.Len(t, res.Options, 6)
	for _, o := range res.Options {
		require.GreaterOrEqual(t, o.TransitDays, 3)
	}
}

func TestEngine_Criteria(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	ctx := context.Background()

	res, err := e.RateOptimalShipping(ctx, crossCountry(), domain.UrgencyStandard, domain.CriterionFastest)
	require.NoError(t, err)
	require.Equal(t, "UPS_SD", res.Recommended.ServiceCode)
	for i := 1; i < len(res.Options); i++ {
		require.LessOrEqual(t, res.Options[i-1].TransitDays, res.Options[i].TransitDays)
	}

	res, err = e.RateOptimalShipping(ctx, crossCountry(), domain.UrgencyStandard, domain.CriterionMostReliable)
	require.NoError(t, err)
	require.Equal(t, "FEDEX_GND", res.Recommended.ServiceCode)
	require.Contains(t, res.Recommended.Features, FeatureReliable)
}

func TestEngine_CapabilityAndActiveFilter(t *testing.T) {
	t.Parallel()

	seed, err := catalog.Seed()
	require.NoError(t, err)
	carriers := append([]domain.Carrier(nil), seed.Carriers...)
	for i := range carriers {
		switch carriers[i].Code {
		case "AMZL":
			carriers[i].Active = false
		case "UPS":
			carriers[i].SupportsSameDay = false
		}
	}
	c, err := catalog.New("test", carriers, seed.Services, nil)
	require.NoError(t, err)

	local := crossCountry()
	local.DestinationZip = "55406"
	res, err := newEngine(c).RateOptimalShipping(context.Background(), local, domain.UrgencySameDay, "")
	require.NoError(t, err)
	require.Len(t, res.Options, 1)
	require.Equal(t, "FEDEX_SD", res.Recommended.ServiceCode)
}

func TestEngine_Features(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	res, err := e.RateOptimalShipping(context.Background(), crossCountry(), domain.UrgencyNextDay, domain.CriterionFastest)
	require.NoError(t, err)

	byCode := make(map[string]domain.ShippingOption, len(res.Options))
	for _, o := range res.Options {
		byCode[o.ServiceCode] = o
	}
	require.Equal(t, []string{FeatureTracking, FeatureNextDay, FeaturePriority}, byCode["USPS_PME"].Features)
	require.Equal(t, []string{FeatureTracking, FeatureNextDay, FeatureReliable, FeatureSignature}, byCode["FEDEX_ON"].Features)
	require.Equal(t, []string{FeatureTracking, FeatureSameDay, FeatureReliable, FeatureSignature}, byCode["UPS_SD"].Features)
}

func TestEngine_Deterministic(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	a, err := e.RateOptimalShipping(context.Background(), crossCountry(), domain.UrgencyStandard, "")
	require.NoError(t, err)
	b, err := e.RateOptimalShipping(context.Background(), crossCountry(), domain.UrgencyStandard, "")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEngine_Validation(t *testing.T) {
	t.Parallel()

	e := newSeedEngine(t)
	neg := -1.0
	cases := []struct {
		field  string
		mutate func(*domain.OrderContext)
		u      domain.UrgencyBand
		c      domain.Criterion
	}{
		{"weight", func(o *domain.OrderContext) { o.Weight = -0.1 }, "", ""},
		{"dimensions", func(o *domain.OrderContext) { o.Dimensions.Height = 0 }, "", ""},
		{"origin_zip", func(o *domain.OrderContext) { o.OriginZip = "5540" }, "", ""},
		{"destination_zip", func(o *domain.OrderContext) { o.DestinationZip = "ABCDE" }, "", ""},
		{"order_value", func(o *domain.OrderContext) { o.OrderValue = -5 }, "", ""},
		{"distance", func(o *domain.OrderContext) { o.Distance = &neg }, "", ""},
		{"urgency", func(*domain.OrderContext) {}, "yesterday", ""},
		{"criterion", func(*domain.OrderContext) {}, "", "cheapest"},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			order := crossCountry()
			tc.mutate(&order)

			_, err := e.RateOptimalShipping(context.Background(), order, tc.u, tc.c)
			require.ErrorIs(t, err, apperr.ErrInvalid)

			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestEngine_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSeedEngine(t).RateOptimalShipping(ctx, crossCountry(), "", "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ZeroWeightAllowed(t *testing.T) {
	t.Parallel()

	order := crossCountry()
	order.Weight = 0
	res, err := newSeedEngine(t).RateOptimalShipping(context.Background(), order, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Options)
}
