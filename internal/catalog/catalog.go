// Package catalog holds the carrier, service and free-shipping reference data.
//
// A Catalog is immutable once built. Readers take a snapshot from Store and
// keep it for the duration of one request.
package catalog

import (
	"fmt"
	"math"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
)

// Catalog is a validated snapshot of the reference data.
type Catalog struct {
	Version  string
	Carriers []domain.Carrier
	Services []domain.Service
	Offers   []domain.FreeShippingOffer

	carriers map[string]int
	services map[string]int
}

// New validates the data and builds lookup indexes. source names the origin in errors.
func New(source string, carriers []domain.Carrier, services []domain.Service, offers []domain.FreeShippingOffer) (*Catalog, error) {
	c := &Catalog{
		Carriers: carriers,
		Services: services,
		Offers:   offers,
		carriers: make(map[string]int, len(carriers)),
		services: make(map[string]int, len(services)),
	}
	if err := c.index(); err != nil {
		return nil, &apperr.ConfigurationError{Source: source, Reason: err.Error()}
	}
	return c, nil
}

// Carrier returns the carrier with the given code.
func (c *Catalog) Carrier(code string) (domain.Carrier, bool) {
	i, ok := c.carriers[code]
	if !ok {
		return domain.Carrier{}, false
	}
	return c.Carriers[i], true
}

// Service returns the service with the given code.
func (c *Catalog) Service(code string) (domain.Service, bool) {
	i, ok := c.services[code]
	if !ok {
		return domain.Service{}, false
	}
	return c.Services[i], true
}

// ServicesOf returns the services of one carrier in catalog order.
func (c *Catalog) ServicesOf(carrierCode string) []domain.Service {
	var out []domain.Service
	for _, s := range c.Services {
		if s.CarrierCode == carrierCode {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) index() error {
	if len(c.Carriers) == 0 {
		return fmt.Errorf("no carriers")
	}
	for i, cr := range c.Carriers {
		if cr.Code == "" {
			return fmt.Errorf("carrier #%d: empty code", i)
		}
		if _, dup := c.carriers[cr.Code]; dup {
			return fmt.Errorf("carrier %s: duplicate code", cr.Code)
		}
		if !(cr.CostMultiplier > 0) || math.IsInf(cr.CostMultiplier, 0) {
			return fmt.Errorf("carrier %s: cost multiplier must be > 0", cr.Code)
		}
		if cr.Reliability < 0 || cr.Reliability > 1 {
			return fmt.Errorf("carrier %s: reliability must be within [0, 1]", cr.Code)
		}
		c.carriers[cr.Code] = i
	}

	for i, s := range c.Services {
		if s.Code == "" {
			return fmt.Errorf("service #%d: empty code", i)
		}
		if _, dup := c.services[s.Code]; dup {
			return fmt.Errorf("service %s: duplicate code", s.Code)
		}
		if _, ok := c.carriers[s.CarrierCode]; !ok {
			return fmt.Errorf("service %s: unknown carrier %q", s.Code, s.CarrierCode)
		}
		if s.TransitDays < 0 {
			return fmt.Errorf("service %s: transit days must be >= 0", s.Code)
		}
		if s.BaseCost < 0 {
			return fmt.Errorf("service %s: base cost must be >= 0", s.Code)
		}
		c.services[s.Code] = i
	}

	seen := make(map[int64]struct{}, len(c.Offers))
	for _, o := range c.Offers {
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("offer %d: duplicate id", o.ID)
		}
		seen[o.ID] = struct{}{}
		if !o.OfferedBy.Valid() {
			return fmt.Errorf("offer %d: unknown grantor %q", o.ID, o.OfferedBy)
		}
		if !o.Type.Valid() {
			return fmt.Errorf("offer %d: unknown type %q", o.ID, o.Type)
		}
		if o.MinimumOrderValue < 0 {
			return fmt.Errorf("offer %d: minimum order value must be >= 0", o.ID)
		}
		if !o.Nationwide && len(o.EligibleZipCodes) == 0 {
			return fmt.Errorf("offer %d: neither nationwide nor zip-scoped", o.ID)
		}
		for _, code := range o.ServiceCodes {
			if _, ok := c.services[code]; !ok {
				return fmt.Errorf("offer %d: unknown service %q", o.ID, code)
			}
		}
	}
	return nil
}
