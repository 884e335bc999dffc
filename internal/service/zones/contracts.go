//go:generate mockgen -source=contracts.go -destination=zones_mocks_test.go -package=zones

package zones

import (
	"context"

	"shipping-allocation-engine/internal/domain"
)

type zoneRepository interface {
	ListZones(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error)
	CreateZone(ctx context.Context, z *domain.Zone) error
}
