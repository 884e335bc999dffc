package zones

import "shipping-allocation-engine/internal/domain"

// Match returns the active zone that serves zip, optionally restricted to one type.
// Lower Priority wins, then lower ID.
func Match(zones []domain.Zone, zip string, zoneType *domain.ZoneType) (domain.Zone, bool) {
	var (
		best  domain.Zone
		found bool
	)
	for _, z := range zones {
		if !z.Active || !z.Covers(zip) {
			continue
		}
		if zoneType != nil && z.Type != *zoneType {
			continue
		}
		if !found || z.Priority < best.Priority || (z.Priority == best.Priority && z.ID < best.ID) {
			best, found = z, true
		}
	}
	return best, found
}
