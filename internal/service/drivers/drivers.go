// Package drivers manages delivery drivers of the distribution centers.
package drivers

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

// DefaultRating is assigned to drivers created without one.
const DefaultRating = 5.0

// Service coordinates driver business logic and orchestrates repository calls.
type Service struct {
	repo             driverRepository
	tx               deliverytx.Runner
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a drivers Service.
func NewService(r driverRepository, tx deliverytx.Runner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		tx:               tx,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a driver for creation and fills defaults.
func validateCreate(d *domain.Driver) error {
	if d == nil {
		return apperr.Validation("driver", "is required")
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	if d.CenterID <= 0 {
		return apperr.Validation("center_id", "must be > 0")
	}
	if d.Name == "" {
		return apperr.Validation("name", "is required")
	}
	if !domain.ValidatePhone(d.Phone) {
		return apperr.Validation("phone", "invalid phone")
	}
	if d.VehicleType == "" {
		d.VehicleType = domain.VehicleVan
	}
	if !d.VehicleType.Valid() {
		return apperr.Validation("vehicle_type", fmt.Sprintf("unknown vehicle type %q", d.VehicleType))
	}
	if d.Status == "" {
		d.Status = domain.DriverAvailable
	}
	if !d.Status.Valid() {
		return apperr.Validation("status", fmt.Sprintf("unknown status %q", d.Status))
	}
	if d.Rating == 0 {
		d.Rating = DefaultRating
	}
	if d.Rating < 0 || d.Rating > 5 {
		return apperr.Validation("rating", "must be within [0, 5]")
	}
	if d.Location != nil {
		if err := validateLocation(*d.Location); err != nil {
			return err
		}
	}
	return nil
}

func validateLocation(l domain.Location) error {
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return apperr.Validation("location.lat", "must be within [-90, 90]")
	}
	if math.IsNaN(l.Lng) || l.Lng < -180 || l.Lng > 180 {
		return apperr.Validation("location.lng", "must be within [-180, 180]")
	}
	return nil
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// List returns the drivers matching f with their summary.
func (s *Service) List(ctx context.Context, f domain.DriverFilter) ([]domain.Driver, domain.DriverStats, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, domain.DriverStats{}, apperr.Validation("status", fmt.Sprintf("unknown status %q", *f.Status))
	}
	if f.VehicleType != nil && !f.VehicleType.Valid() {
		return nil, domain.DriverStats{}, apperr.Validation("vehicle_type", fmt.Sprintf("unknown vehicle type %q", *f.VehicleType))
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	items, err := s.repo.ListDrivers(ctx, f)
	if err != nil {
		return nil, domain.DriverStats{}, err
	}
	return items, Stats(items), nil
}

// Stats summarizes a driver listing. AvgRating is rounded to one decimal.
func Stats(items []domain.Driver) domain.DriverStats {
	st := domain.DriverStats{Total: len(items)}
	var rating float64
	for _, d := range items {
		switch d.Status {
		case domain.DriverAvailable:
			st.Available++
		case domain.DriverBusy:
			st.Busy++
		case domain.DriverOffDuty:
			st.OffDuty++
		}
		rating += d.Rating
		st.TotalDeliveriesToday += d.TodayDeliveries
	}
	if len(items) > 0 {
		st.AvgRating = math.Round(rating/float64(len(items))*10) / 10
	}
	return st
}

// Create persists a new driver and fills its generated ID.
func (s *Service) Create(ctx context.Context, d *domain.Driver) error {
	if err := validateCreate(d); err != nil {
		return err
	}
	d.Active = true
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.CreateDriver(ctx, d); err != nil {
		return err
	}
	s.logger.Info("driver created",
		logx.String("event", "driver_created"),
		logx.Int64("driver_id", d.ID),
		logx.Int64("center_id", d.CenterID),
	)
	return nil
}

// UpdateStatus sets a driver status and, when given, its location.
// Updates to one driver serialize on its row lock.
func (s *Service) UpdateStatus(ctx context.Context, u domain.DriverStatusUpdate) (domain.Driver, error) {
	if u.ID <= 0 {
		return domain.Driver{}, apperr.Validation("id", "must be > 0")
	}
	if !u.Status.Valid() {
		return domain.Driver{}, apperr.Validation("status", fmt.Sprintf("unknown status %q", u.Status))
	}
	if u.Location != nil {
		if err := validateLocation(*u.Location); err != nil {
			return domain.Driver{}, err
		}
		if u.Location.At.IsZero() {
			loc := *u.Location
			loc.At = s.now()
			u.Location = &loc
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		out  domain.Driver
		from domain.DriverStatus
	)
	err := s.tx.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetDriverForUpdate(ctx, u.ID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("driver %d: %w", u.ID, apperr.ErrNotFound)
		}
		if err := tx.UpdateDriverStatus(ctx, d.ID, u.Status, u.Location); err != nil {
			return err
		}
		from = d.Status
		d.Status = u.Status
		if u.Location != nil {
			d.Location = u.Location
		}
		out = *d
		return nil
	})
	if err != nil {
		return domain.Driver{}, err
	}

	s.logger.Info("driver status changed",
		logx.String("event", "driver_status_changed"),
		logx.Int64("driver_id", out.ID),
		logx.String("from", string(from)),
		logx.String("to", string(out.Status)),
	)
	return out, nil
}
