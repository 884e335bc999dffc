// Package dispatch builds driver routes from scheduled deliveries and tracks
// their progress stop by stop.
package dispatch

import (
	"context"
	"fmt"
	"math"
	"time"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

// Default per-stop estimates.
const (
	DefaultStopDistance = 4.2
	DefaultStopDuration = 28 * time.Minute
)

// Config holds per-stop route estimates.
type Config struct {
	StopDistance float64
	StopDuration time.Duration
}

// Planner plans routes and completes their stops.
type Planner struct {
	repo             routeRepository
	cfg              Config
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewPlanner creates a Planner. Non-positive estimates fall back to the defaults.
func NewPlanner(r routeRepository, cfg Config, timeout time.Duration, logger logx.Logger) *Planner {
	if cfg.StopDistance <= 0 {
		cfg.StopDistance = DefaultStopDistance
	}
	if cfg.StopDuration <= 0 {
		cfg.StopDuration = DefaultStopDuration
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Planner{
		repo:             r,
		cfg:              cfg,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the UTC wall clock.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

func (p *Planner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.operationTimeout)
}

// OptimizeRoute builds an active route over the deliveries in the given order.
// A zero DriverID picks the least loaded available driver of the deliveries' center.
func (p *Planner) OptimizeRoute(ctx context.Context, plan domain.RoutePlan) (domain.Route, error) {
	if err := validatePlan(plan); err != nil {
		return domain.Route{}, err
	}
	if plan.StartAt.IsZero() {
		plan.StartAt = p.now()
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var route domain.Route
	err := p.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		locked, err := tx.GetDeliveriesForUpdate(ctx, plan.DeliveryIDs)
		if err != nil {
			return err
		}
		centerID, err := checkDeliveries(plan.DeliveryIDs, locked)
		if err != nil {
			return err
		}

		driver, err := p.pickDriver(ctx, tx, plan.DriverID, centerID)
		if err != nil {
			return err
		}

		route = p.build(plan, *driver)
		if err := tx.InsertRoute(ctx, &route); err != nil {
			return err
		}
		if err := tx.AttachToRoute(ctx, route.ID, driver.ID, route.DeliveryIDs); err != nil {
			return err
		}
		return tx.UpdateDriverStatus(ctx, driver.ID, domain.DriverBusy, nil)
	})
	if err != nil {
		return domain.Route{}, err
	}

	p.logger.Info("route planned",
		logx.String("event", "route_planned"),
		logx.Int64("route_id", route.ID),
		logx.Int64("driver_id", route.DriverID),
		logx.Int("stops", len(route.DeliveryIDs)),
		logx.Int64s("delivery_ids", route.DeliveryIDs),
		logx.Float64("total_distance", route.TotalDistance),
		logx.Time("estimated_arrival", route.EstimatedArrival),
	)
	return route, nil
}

func (p *Planner) build(plan domain.RoutePlan, driver domain.Driver) domain.Route {
	stops := len(plan.DeliveryIDs)
	duration := time.Duration(stops) * p.cfg.StopDuration
	return domain.Route{
		DriverID:         driver.ID,
		Name:             fmt.Sprintf("%s %s", driver.Name, plan.StartAt.Format("2006-01-02 15:04")),
		DeliveryIDs:      append([]int64(nil), plan.DeliveryIDs...),
		StartAt:          plan.StartAt,
		TotalDistance:    math.Round(float64(stops)*p.cfg.StopDistance*10) / 10,
		TotalMinutes:     int(duration / time.Minute),
		EstimatedArrival: plan.StartAt.Add(duration),
		Status:           domain.RouteActive,
	}
}

func (p *Planner) pickDriver(ctx context.Context, tx deliverytx.Repository, driverID, centerID int64) (*domain.Driver, error) {
	if driverID == 0 {
		d, err := tx.FindAvailableDriverForUpdate(ctx, centerID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, fmt.Errorf("no available driver at center %d: %w", centerID, apperr.ErrConflict)
		}
		return d, nil
	}

	d, err := tx.GetDriverForUpdate(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("driver %d: %w", driverID, apperr.ErrNotFound)
	}
	if d.CenterID != centerID {
		return nil, apperr.Validation("driver_id", fmt.Sprintf("driver belongs to center %d", d.CenterID))
	}
	if !d.Active || d.Status != domain.DriverAvailable {
		return nil, fmt.Errorf("driver %d is %s: %w", d.ID, d.Status, apperr.ErrConflict)
	}
	return d, nil
}

func validatePlan(plan domain.RoutePlan) error {
	if len(plan.DeliveryIDs) == 0 {
		return apperr.Validation("delivery_ids", "at least one delivery is required")
	}
	seen := make(map[int64]struct{}, len(plan.DeliveryIDs))
	for _, id := range plan.DeliveryIDs {
		if id <= 0 {
			return apperr.Validation("delivery_ids", "ids must be > 0")
		}
		if _, dup := seen[id]; dup {
			return apperr.Validation("delivery_ids", fmt.Sprintf("duplicate id %d", id))
		}
		seen[id] = struct{}{}
	}
	if plan.DriverID < 0 {
		return apperr.Validation("driver_id", "must be >= 0")
	}
	return nil
}

// checkDeliveries verifies that every requested delivery exists, is scheduled,
// is not routed yet and that all share one center.
func checkDeliveries(ids []int64, locked []domain.Delivery) (int64, error) {
	byID := make(map[int64]domain.Delivery, len(locked))
	for _, d := range locked {
		byID[d.ID] = d
	}

	var centerID int64
	for i, id := range ids {
		d, ok := byID[id]
		if !ok {
			return 0, fmt.Errorf("delivery %d: %w", id, apperr.ErrNotFound)
		}
		if d.Status != domain.DeliveryScheduled {
			return 0, fmt.Errorf("delivery %d is %s: %w", id, d.Status, apperr.ErrConflict)
		}
		if d.RouteID != nil {
			return 0, fmt.Errorf("delivery %d already on route %d: %w", id, *d.RouteID, apperr.ErrConflict)
		}
		if i == 0 {
			centerID = d.CenterID
		} else if d.CenterID != centerID {
			return 0, apperr.Validation("delivery_ids", "deliveries span multiple centers")
		}
	}
	return centerID, nil
}

// CompleteStop advances the route by one stop. The last stop completes the
// route and releases the driver. A stop index other than the current one is a
// conflict, so a replayed completion never moves the route twice.
func (p *Planner) CompleteStop(ctx context.Context, c domain.StopCompletion) (domain.Route, error) {
	routeID := c.RouteID
	if routeID <= 0 {
		return domain.Route{}, apperr.Validation("id", "must be > 0")
	}
	if c.Stop != nil && *c.Stop < 0 {
		return domain.Route{}, apperr.Validation("stop", "must be >= 0")
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var route domain.Route
	err := p.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		rt, err := tx.GetRouteForUpdate(ctx, routeID)
		if err != nil {
			return err
		}
		if rt == nil {
			return fmt.Errorf("route %d: %w", routeID, apperr.ErrNotFound)
		}
		if rt.Status == domain.RouteCompleted || rt.Remaining() <= 0 {
			return fmt.Errorf("route %d already completed: %w", routeID, apperr.ErrConflict)
		}
		if c.Stop != nil && *c.Stop != rt.CurrentStop {
			return fmt.Errorf("route %d is at stop %d, not %d: %w", routeID, rt.CurrentStop, *c.Stop, apperr.ErrConflict)
		}

		rt.CurrentStop++
		rt.CompletedDeliveries++
		if rt.Remaining() == 0 {
			end := p.now()
			rt.Status = domain.RouteCompleted
			rt.EndAt = &end
		}
		if err := tx.SaveRouteProgress(ctx, rt); err != nil {
			return err
		}
		if err := tx.AddDriverDeliveries(ctx, rt.DriverID, 1); err != nil {
			return err
		}
		if rt.Status == domain.RouteCompleted {
			if err := tx.UpdateDriverStatus(ctx, rt.DriverID, domain.DriverAvailable, nil); err != nil {
				return err
			}
		}
		route = *rt
		return nil
	})
	if err != nil {
		return domain.Route{}, err
	}

	p.logger.Info("route stop completed",
		logx.String("event", "route_stop_completed"),
		logx.Int64("route_id", route.ID),
		logx.Int("current_stop", route.CurrentStop),
		logx.Int("remaining", route.Remaining()),
		logx.String("status", string(route.Status)),
	)
	return route, nil
}

// Get returns one route.
func (p *Planner) Get(ctx context.Context, id int64) (domain.Route, error) {
	if id <= 0 {
		return domain.Route{}, apperr.Validation("id", "must be > 0")
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	rt, err := p.repo.GetRoute(ctx, id)
	if err != nil {
		return domain.Route{}, err
	}
	if rt == nil {
		return domain.Route{}, apperr.ErrNotFound
	}
	return *rt, nil
}

// List returns the routes matching f.
func (p *Planner) List(ctx context.Context, f domain.RouteFilter) ([]domain.Route, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.Validation("status", fmt.Sprintf("unknown status %q", *f.Status))
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.repo.ListRoutes(ctx, f)
}
