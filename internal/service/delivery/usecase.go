// Package delivery schedules zone deliveries and drives their status machine.
package delivery

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

// Service - service for scheduling deliveries and updating their status.
type Service struct {
	repo             deliveryRepository
	publisher        Publisher
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewDeliveryService - creates a new delivery Service. A nil publisher drops status changes.
func NewDeliveryService(r deliveryRepository, p Publisher, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		publisher:        p,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the UTC wall clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create schedules a delivery inside the requested zone.
func (s *Service) Create(ctx context.Context, req domain.DeliveryRequest) (domain.Delivery, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return domain.Delivery{}, err
	}
	if req.ScheduledAt.IsZero() {
		req.ScheduledAt = s.now()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var out domain.Delivery
	err = s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		zone, err := tx.GetZone(ctx, req.ZoneID)
		if err != nil {
			return err
		}
		if zone == nil {
			return fmt.Errorf("zone %d: %w", req.ZoneID, apperr.ErrNotFound)
		}
		if err := checkZone(*zone, req); err != nil {
			return err
		}

		id, err := tx.NextDeliveryID(ctx)
		if err != nil {
			return err
		}
		out = domain.Delivery{
			ID:             id,
			TrackingNumber: domain.TrackingNumber(id),
			CenterID:       req.CenterID,
			ZoneID:         zone.ID,
			CustomerName:   req.CustomerName,
			CustomerPhone:  req.CustomerPhone,
			Address:        req.Address,
			ZipCode:        req.ZipCode,
			Type:           req.Type,
			PackageCount:   req.PackageCount,
			TotalWeight:    req.TotalWeight,
			Fee:            zone.BasePrice,
			Status:         domain.DeliveryScheduled,
			ScheduledAt:    req.ScheduledAt,
			EstimatedAt:    req.ScheduledAt.Add(time.Duration(zone.EstimatedMinutes) * time.Minute),
			Instructions:   req.Instructions,
		}
		return tx.InsertDelivery(ctx, &out)
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.Int64("delivery_id", out.ID),
		logx.String("tracking_number", out.TrackingNumber),
		logx.Int64("zone_id", out.ZoneID),
		logx.String("type", string(out.Type)),
		logx.Float64("fee", out.Fee),
		logx.Time("estimated_at", out.EstimatedAt),
	)
	return out, nil
}

func checkZone(z domain.Zone, req domain.DeliveryRequest) error {
	if !z.Active || !z.Covers(req.ZipCode) {
		return &apperr.NotCoveredError{PostalCode: req.ZipCode, ZoneType: string(req.Type)}
	}
	if z.CenterID != req.CenterID {
		return apperr.Validation("zone_id", fmt.Sprintf("zone belongs to center %d", z.CenterID))
	}
	if z.Type != req.Type {
		return apperr.Validation("type", fmt.Sprintf("zone serves %s", z.Type))
	}
	return nil
}

// UpdateStatus moves a delivery along its status machine. Updates to one
// delivery serialize on its row lock.
func (s *Service) UpdateStatus(ctx context.Context, u domain.StatusUpdate) (domain.StatusChange, error) {
	if u.DeliveryID <= 0 {
		return domain.StatusChange{}, apperr.Validation("id", "must be > 0")
	}
	if !u.Status.Valid() {
		return domain.StatusChange{}, apperr.Validation("status", fmt.Sprintf("unknown status %q", u.Status))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var change domain.StatusChange
	err := s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetDeliveryForUpdate(ctx, u.DeliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("delivery %d: %w", u.DeliveryID, apperr.ErrNotFound)
		}

		held, ok := domain.Transition(d.Status, d.HeldStatus, u.Status)
		if !ok {
			return &apperr.TransitionError{From: string(d.Status), To: string(u.Status)}
		}

		now := s.now()
		from := d.Status
		d.Status = u.Status
		d.HeldStatus = held
		switch u.Status {
		case domain.DeliveryPickedUp:
			d.PickedUpAt = &now
		case domain.DeliveryDelivered:
			d.DeliveredAt = &now
		}
		if u.DriverID != nil {
			d.DriverID = u.DriverID
		}
		if u.PhotoProof != nil {
			d.PhotoProof = u.PhotoProof
		}
		if u.Signature != nil {
			d.Signature = u.Signature
		}
		if err := tx.SaveDeliveryStatus(ctx, d); err != nil {
			return err
		}

		change = domain.StatusChange{Delivery: *d, From: from, At: now}
		return nil
	})
	if err != nil {
		return domain.StatusChange{}, err
	}

	s.logger.Info("delivery status changed",
		logx.String("event", "delivery_status_changed"),
		logx.Int64("delivery_id", change.Delivery.ID),
		logx.String("from", string(change.From)),
		logx.String("to", string(change.Delivery.Status)),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishStatusChange(ctx, change); err != nil {
			s.logger.Warn("status change not published",
				logx.Int64("delivery_id", change.Delivery.ID),
				logx.Err(err),
			)
		}
	}
	return change, nil
}

// Get returns one delivery.
func (s *Service) Get(ctx context.Context, id int64) (domain.Delivery, error) {
	if id <= 0 {
		return domain.Delivery{}, apperr.Validation("id", "must be > 0")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.repo.GetDelivery(ctx, id)
	if err != nil {
		return domain.Delivery{}, err
	}
	if d == nil {
		return domain.Delivery{}, apperr.ErrNotFound
	}
	return *d, nil
}

// List returns the deliveries matching f with their summary.
func (s *Service) List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, domain.DeliveryStats, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, domain.DeliveryStats{}, apperr.Validation("status", fmt.Sprintf("unknown status %q", *f.Status))
	}
	if f.Type != nil && !f.Type.Valid() {
		return nil, domain.DeliveryStats{}, apperr.Validation("type", fmt.Sprintf("unknown type %q", *f.Type))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.repo.ListDeliveries(ctx, f)
	if err != nil {
		return nil, domain.DeliveryStats{}, err
	}
	return items, Stats(items), nil
}

// Stats summarizes a delivery listing.
func Stats(items []domain.Delivery) domain.DeliveryStats {
	st := domain.DeliveryStats{Total: len(items)}
	for _, d := range items {
		switch d.Status {
		case domain.DeliveryScheduled:
			st.Scheduled++
		case domain.DeliveryInTransit:
			st.InTransit++
		case domain.DeliveryDelivered:
			st.Delivered++
		case domain.DeliveryFailed:
			st.Failed++
		}
		st.TotalRevenue += d.Fee
	}
	st.TotalRevenue = math.Round(st.TotalRevenue*100) / 100
	return st
}

func normalizeRequest(req domain.DeliveryRequest) (domain.DeliveryRequest, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Address = strings.TrimSpace(req.Address)
	req.ZipCode = strings.TrimSpace(req.ZipCode)
	req.Instructions = strings.TrimSpace(req.Instructions)

	switch {
	case req.CenterID <= 0:
		return req, apperr.Validation("center_id", "must be > 0")
	case req.ZoneID <= 0:
		return req, apperr.Validation("zone_id", "must be > 0")
	case req.CustomerName == "":
		return req, apperr.Validation("customer_name", "is required")
	case !domain.ValidatePhone(req.CustomerPhone):
		return req, apperr.Validation("customer_phone", "invalid phone")
	case req.Address == "":
		return req, apperr.Validation("address", "is required")
	case !domain.ValidZip(req.ZipCode):
		return req, apperr.Validation("zip_code", "must be 5 digits")
	case !req.Type.Valid():
		return req, apperr.Validation("type", fmt.Sprintf("unknown type %q", req.Type))
	case req.PackageCount < 1:
		return req, apperr.Validation("package_count", "must be >= 1")
	case !(req.TotalWeight > 0) || math.IsInf(req.TotalWeight, 0):
		return req, apperr.Validation("total_weight", "must be > 0")
	}
	return req, nil
}
