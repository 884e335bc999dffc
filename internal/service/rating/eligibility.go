package rating

import "shipping-allocation-engine/internal/domain"

// ResolveOffer returns the first offer the order qualifies for, in stored order.
// Offers do not stack and later offers are never compared against earlier ones.
func ResolveOffer(offers []domain.FreeShippingOffer, o domain.OrderContext) *domain.FreeShippingOffer {
	categories := o.Categories()
	for i := range offers {
		offer := offers[i]
		if !offer.Active {
			continue
		}
		if !offer.CoversZip(o.DestinationZip) {
			continue
		}
		if offer.MinimumOrderValue > o.OrderValue {
			continue
		}
		if offer.OfferedBy == domain.GrantorSeller && offer.EntityID != o.SellerID {
			continue
		}
		if offer.CategoryScoped() && !offer.MatchesCategory(categories) {
			continue
		}
		return &offer
	}
	return nil
}
