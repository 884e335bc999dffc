// Package zones answers local-delivery coverage questions from an in-memory
// snapshot of the delivery zones.
package zones

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// DefaultFallback is suggested when no zone covers a postal code.
var DefaultFallback = domain.FallbackTier{
	Type:             domain.ZoneNextDay,
	EstimatedMinutes: 1440,
	BasePrice:        2.99,
}

// Service serves coverage checks and zone administration.
type Service struct {
	repo             zoneRepository
	fallback         domain.FallbackTier
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time

	snapshot atomic.Pointer[[]domain.Zone]
}

// NewService creates a zones Service. The snapshot is empty until Refresh.
func NewService(r zoneRepository, fallback domain.FallbackTier, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if !fallback.Type.Valid() {
		fallback = DefaultFallback
	}
	return &Service{
		repo:             r,
		fallback:         fallback,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Refresh reloads active zones from storage and swaps the snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	active := true
	zs, err := s.repo.ListZones(ctx, domain.ZoneFilter{Active: &active})
	if err != nil {
		return fmt.Errorf("refresh zones: %w", err)
	}
	s.snapshot.Store(&zs)
	return nil
}

// Snapshot returns the zones used for coverage checks.
func (s *Service) Snapshot() []domain.Zone {
	p := s.snapshot.Load()
	if p == nil {
		return nil
	}
	return *p
}

// CheckCoverage finds the zone serving postalCode. Without a match it returns
// the fallback tier, or a NotCoveredError when allowFallback is false.
func (s *Service) CheckCoverage(
	ctx context.Context,
	postalCode string,
	zoneType *domain.ZoneType,
	allowFallback bool,
) (domain.CoverageVerdict, error) {
	postalCode = strings.TrimSpace(postalCode)
	if !domain.ValidZip(postalCode) {
		return domain.CoverageVerdict{}, apperr.Validation("postal_code", "must be a 5-digit postal code")
	}
	if zoneType != nil && !zoneType.Valid() {
		return domain.CoverageVerdict{}, apperr.Validation("delivery_type", "unknown zone type")
	}
	if s.snapshot.Load() == nil {
		if err := s.Refresh(ctx); err != nil {
			return domain.CoverageVerdict{}, err
		}
	}

	now := s.now()
	if z, ok := Match(s.Snapshot(), postalCode, zoneType); ok {
		return domain.CoverageVerdict{
			Covered:           true,
			PostalCode:        postalCode,
			Zone:              &z,
			EstimatedDelivery: now.Add(time.Duration(z.EstimatedMinutes) * time.Minute),
			Fee:               z.BasePrice,
			Message:           fmt.Sprintf("%s delivery available via %s", z.Type, z.Name),
		}, nil
	}

	if !allowFallback {
		nc := &apperr.NotCoveredError{PostalCode: postalCode}
		if zoneType != nil {
			nc.ZoneType = string(*zoneType)
		}
		return domain.CoverageVerdict{}, nc
	}

	fb := s.fallback
	return domain.CoverageVerdict{
		Covered:           false,
		PostalCode:        postalCode,
		EstimatedDelivery: now.Add(time.Duration(fb.EstimatedMinutes) * time.Minute),
		Fee:               fb.BasePrice,
		Fallback:          &fb,
		Message:           fmt.Sprintf("no local zone serves %s, %s delivery available", postalCode, fb.Type),
	}, nil
}

// List returns zones matching the filter straight from storage.
func (s *Service) List(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error) {
	if f.Type != nil && !f.Type.Valid() {
		return nil, apperr.Validation("type", "unknown zone type")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListZones(ctx, f)
}

// Create validates and stores a zone, then refreshes the snapshot.
func (s *Service) Create(ctx context.Context, z *domain.Zone) error {
	if err := validateZone(z); err != nil {
		return err
	}

	cctx, cancel := s.withTimeout(ctx)
	err := s.repo.CreateZone(cctx, z)
	cancel()
	if err != nil {
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("zone snapshot refresh failed", logx.Int64("zone_id", z.ID), logx.Err(err))
	}

	s.logger.Info("zone created",
		logx.String("event", "zone_created"),
		logx.Int64("zone_id", z.ID),
		logx.Int64("center_id", z.CenterID),
		logx.String("type", string(z.Type)),
		logx.Int("zip_codes", len(z.ZipCodes)),
	)
	return nil
}

func validateZone(z *domain.Zone) error {
	if z == nil {
		return apperr.ErrInvalid
	}
	z.Name = strings.TrimSpace(z.Name)
	if z.Name == "" {
		return apperr.Validation("name", "must not be empty")
	}
	if z.CenterID <= 0 {
		return apperr.Validation("center_id", "must be > 0")
	}
	if !z.Type.Valid() {
		return apperr.Validation("type", "unknown zone type")
	}
	if len(z.ZipCodes) == 0 {
		return apperr.Validation("zip_codes", "must not be empty")
	}
	for _, zip := range z.ZipCodes {
		if !domain.ValidZip(zip) {
			return apperr.Validation("zip_codes", fmt.Sprintf("%q is not a 5-digit postal code", zip))
		}
	}
	if z.BasePrice < 0 {
		return apperr.Validation("base_price", "must be >= 0")
	}
	if z.MaxDistance < 0 {
		return apperr.Validation("max_distance", "must be >= 0")
	}
	if z.EstimatedMinutes <= 0 {
		return apperr.Validation("estimated_minutes", "must be > 0")
	}
	if z.Priority < 0 {
		return apperr.Validation("priority", "must be >= 0")
	}
	return nil
}
