package domain

import "regexp"

var reZip = regexp.MustCompile(`^\d{5}$`)

// ValidZip reports whether s is a five-digit postal code.
func ValidZip(s string) bool {
	return reZip.MatchString(s)
}

// Dimensions holds package geometry, all sides in the same unit.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Volume returns L*W*H.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// LineItem is a single order position.
type LineItem struct {
	SKU      string
	Category string
	Quantity int
}

// OrderContext carries everything the engine needs to rate an order.
type OrderContext struct {
	OrderID        string
	OriginZip      string
	DestinationZip string
	// Distance overrides the distance band derived from the postal codes when set.
	Distance   *float64
	Weight     float64
	Dimensions Dimensions
	OrderValue float64
	Items      []LineItem
	SellerID   int64
}

// Categories returns the categories of all line items.
func (o OrderContext) Categories() []string {
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, it.Category)
	}
	return out
}
