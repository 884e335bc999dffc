package domain

import (
	"slices"
	"strings"
)

type (
	// OfferGrantor is who grants a free-shipping offer.
	OfferGrantor string
	// OfferType is the kind of free-shipping offer.
	OfferType string
)

// List of offer grantors
const (
	GrantorSeller       OfferGrantor = "seller"
	GrantorManufacturer OfferGrantor = "manufacturer"
)

// List of offer types
const (
	OfferMinimumOrder    OfferType = "minimum_order"
	OfferProductSpecific OfferType = "product_specific"
	OfferPromotional     OfferType = "promotional"
)

// Valid checks if the OfferGrantor is valid
func (g OfferGrantor) Valid() bool {
	return g == GrantorSeller || g == GrantorManufacturer
}

// Valid checks if the OfferType is valid
func (t OfferType) Valid() bool {
	switch t {
	case OfferMinimumOrder, OfferProductSpecific, OfferPromotional:
		return true
	default:
		return false
	}
}

// FreeShippingOffer is a free-shipping promotion granted by a seller or a manufacturer.
type FreeShippingOffer struct {
	ID                int64
	OfferedBy         OfferGrantor
	EntityID          int64
	EntityName        string
	Type              OfferType
	MinimumOrderValue float64
	Nationwide        bool
	EligibleZipCodes  []string
	Categories        []string
	ServiceCodes      []string
	Active            bool
	Terms             string
}

// CoversZip reports whether the offer is valid for the destination postal code.
func (o FreeShippingOffer) CoversZip(zip string) bool {
	return o.Nationwide || slices.Contains(o.EligibleZipCodes, zip)
}

// CategoryScoped reports whether the offer needs a matching line-item category.
func (o FreeShippingOffer) CategoryScoped() bool {
	return o.OfferedBy == GrantorManufacturer || o.Type == OfferProductSpecific
}

// MatchesCategory reports whether any of the given categories is listed by the offer.
// Comparison is case-insensitive.
func (o FreeShippingOffer) MatchesCategory(categories []string) bool {
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		for _, allowed := range o.Categories {
			if strings.ToLower(allowed) == c {
				return true
			}
		}
	}
	return false
}

// AppliesTo reports whether the offer makes the given service free.
func (o FreeShippingOffer) AppliesTo(serviceCode string) bool {
	return slices.Contains(o.ServiceCodes, serviceCode)
}

// Source returns the human-readable savings source, e.g. "seller: Twin Cities Tech Hub".
func (o FreeShippingOffer) Source() string {
	return string(o.OfferedBy) + ": " + o.EntityName
}
