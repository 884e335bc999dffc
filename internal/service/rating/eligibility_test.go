package rating

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shipping-allocation-engine/internal/domain"
)

func testOffers() []domain.FreeShippingOffer {
	return []domain.FreeShippingOffer{
		{
			ID: 1, OfferedBy: domain.GrantorSeller, EntityID: 1, EntityName: "Twin Cities Tech Hub",
			Type: domain.OfferMinimumOrder, MinimumOrderValue: 75,
			EligibleZipCodes: []string{"55401", "55402"}, ServiceCodes: []string{"USPS_GA"}, Active: true,
		},
		{
			ID: 2, OfferedBy: domain.GrantorManufacturer, EntityID: 101, EntityName: "Samsung Electronics",
			Type: domain.OfferProductSpecific, Nationwide: true, Categories: []string{"electronics"},
			ServiceCodes: []string{"UPS_GND"}, Active: true,
		},
		{
			ID: 3, OfferedBy: domain.GrantorSeller, EntityID: 3, EntityName: "North Loop Fashion Co.",
			Type: domain.OfferPromotional, MinimumOrderValue: 40, Nationwide: true,
			ServiceCodes: []string{"USPS_GA"}, Active: true,
		},
	}
}

func TestResolveOffer(t *testing.T) {
	t.Parallel()

	offers := testOffers()
	cases := map[string]struct {
		order  domain.OrderContext
		wantID int64
	}{
		"seller in zone above minimum": {
			order:  domain.OrderContext{DestinationZip: "55401", OrderValue: 80, SellerID: 1},
			wantID: 1,
		},
		"seller below minimum": {
			order: domain.OrderContext{DestinationZip: "55401", OrderValue: 74.99, SellerID: 1},
		},
		"seller outside zone": {
			order: domain.OrderContext{DestinationZip: "90210", OrderValue: 80, SellerID: 1},
		},
		"other seller": {
			order: domain.OrderContext{DestinationZip: "55401", OrderValue: 80, SellerID: 9},
		},
		"manufacturer category match": {
			order: domain.OrderContext{
				DestinationZip: "90210", OrderValue: 10,
				Items: []domain.LineItem{{Category: "Books"}, {Category: "Electronics"}},
			},
			wantID: 2,
		},
		"manufacturer without items": {
			order: domain.OrderContext{DestinationZip: "90210", OrderValue: 10},
		},
		"promotional nationwide seller": {
			order:  domain.OrderContext{DestinationZip: "90210", OrderValue: 40, SellerID: 3},
			wantID: 3,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := ResolveOffer(offers, tc.order)
			if tc.wantID == 0 {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tc.wantID, got.ID)
		})
	}
}

func TestResolveOffer_FirstMatchWins(t *testing.T) {
	t.Parallel()

	offers := testOffers()
	// both the Samsung and North Loop offers qualify, the earlier one is returned
	order := domain.OrderContext{
		DestinationZip: "90210", OrderValue: 500, SellerID: 3,
		Items: []domain.LineItem{{Category: "electronics"}},
	}
	got := ResolveOffer(offers, order)
	require.NotNil(t, got)
	require.Equal(t, int64(2), got.ID)
}

func TestResolveOffer_SkipsInactive(t *testing.T) {
	t.Parallel()

	offers := testOffers()
	offers[0].Active = false

	got := ResolveOffer(offers, domain.OrderContext{DestinationZip: "55401", OrderValue: 80, SellerID: 1})
	require.Nil(t, got)
}

func TestResolveOffer_ReturnsCopy(t *testing.T) {
	t.Parallel()

	offers := testOffers()
	got := ResolveOffer(offers, domain.OrderContext{DestinationZip: "55401", OrderValue: 80, SellerID: 1})
	require.NotNil(t, got)
	got.EntityName = "changed"
	require.Equal(t, "Twin Cities Tech Hub", offers[0].EntityName)
}
