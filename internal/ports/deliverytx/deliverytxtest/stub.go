// Package deliverytxtest provides a function-field stub of deliverytx.Repository.
package deliverytxtest

import (
	"context"

	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/ports/deliverytx"
)

// Tx is a deliverytx.Repository whose methods delegate to the set fields.
// An unset field returns zero values.
type Tx struct {
	GetZoneFn                      func(ctx context.Context, id int64) (*domain.Zone, error)
	NextDeliveryIDFn               func(ctx context.Context) (int64, error)
	InsertDeliveryFn               func(ctx context.Context, d *domain.Delivery) error
	GetDeliveryForUpdateFn         func(ctx context.Context, id int64) (*domain.Delivery, error)
	GetDeliveriesForUpdateFn       func(ctx context.Context, ids []int64) ([]domain.Delivery, error)
	SaveDeliveryStatusFn           func(ctx context.Context, d *domain.Delivery) error
	AttachToRouteFn                func(ctx context.Context, routeID, driverID int64, deliveryIDs []int64) error
	GetDriverForUpdateFn           func(ctx context.Context, id int64) (*domain.Driver, error)
	FindAvailableDriverForUpdateFn func(ctx context.Context, centerID int64) (*domain.Driver, error)
	UpdateDriverStatusFn           func(ctx context.Context, id int64, status domain.DriverStatus, loc *domain.Location) error
	AddDriverDeliveriesFn          func(ctx context.Context, id int64, n int) error
	InsertRouteFn                  func(ctx context.Context, r *domain.Route) error
	GetRouteForUpdateFn            func(ctx context.Context, id int64) (*domain.Route, error)
	SaveRouteProgressFn            func(ctx context.Context, r *domain.Route) error
}

var _ deliverytx.Repository = (*Tx)(nil)

func (s *Tx) GetZone(ctx context.Context, id int64) (*domain.Zone, error) {
	if s.GetZoneFn == nil {
		return nil, nil
	}
	return s.GetZoneFn(ctx, id)
}

func (s *Tx) NextDeliveryID(ctx context.Context) (int64, error) {
	if s.NextDeliveryIDFn == nil {
		return 0, nil
	}
	return s.NextDeliveryIDFn(ctx)
}

func (s *Tx) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	if s.InsertDeliveryFn == nil {
		return nil
	}
	return s.InsertDeliveryFn(ctx, d)
}

func (s *Tx) GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	if s.GetDeliveryForUpdateFn == nil {
		return nil, nil
	}
	return s.GetDeliveryForUpdateFn(ctx, id)
}

func (s *Tx) GetDeliveriesForUpdate(ctx context.Context, ids []int64) ([]domain.Delivery, error) {
	if s.GetDeliveriesForUpdateFn == nil {
		return nil, nil
	}
	return s.GetDeliveriesForUpdateFn(ctx, ids)
}

func (s *Tx) SaveDeliveryStatus(ctx context.Context, d *domain.Delivery) error {
	if s.SaveDeliveryStatusFn == nil {
		return nil
	}
	return s.SaveDeliveryStatusFn(ctx, d)
}

func (s *Tx) AttachToRoute(ctx context.Context, routeID, driverID int64, deliveryIDs []int64) error {
	if s.AttachToRouteFn == nil {
		return nil
	}
	return s.AttachToRouteFn(ctx, routeID, driverID, deliveryIDs)
}

func (s *Tx) GetDriverForUpdate(ctx context.Context, id int64) (*domain.Driver, error) {
	if s.GetDriverForUpdateFn == nil {
		return nil, nil
	}
	return s.GetDriverForUpdateFn(ctx, id)
}

func (s *Tx) FindAvailableDriverForUpdate(ctx context.Context, centerID int64) (*domain.Driver, error) {
	if s.FindAvailableDriverForUpdateFn == nil {
		return nil, nil
	}
	return s.FindAvailableDriverForUpdateFn(ctx, centerID)
}

func (s *Tx) UpdateDriverStatus(ctx context.Context, id int64, status domain.DriverStatus, loc *domain.Location) error {
	if s.UpdateDriverStatusFn == nil {
		return nil
	}
	return s.UpdateDriverStatusFn(ctx, id, status, loc)
}

func (s *Tx) AddDriverDeliveries(ctx context.Context, id int64, n int) error {
	if s.AddDriverDeliveriesFn == nil {
		return nil
	}
	return s.AddDriverDeliveriesFn(ctx, id, n)
}

func (s *Tx) InsertRoute(ctx context.Context, r *domain.Route) error {
	if s.InsertRouteFn == nil {
		return nil
	}
	return s.InsertRouteFn(ctx, r)
}

func (s *Tx) GetRouteForUpdate(ctx context.Context, id int64) (*domain.Route, error) {
	if s.GetRouteForUpdateFn == nil {
		return nil, nil
	}
	return s.GetRouteForUpdateFn(ctx, id)
}

func (s *Tx) SaveRouteProgress(ctx context.Context, r *domain.Route) error {
	if s.SaveRouteProgressFn == nil {
		return nil
	}
	return s.SaveRouteProgressFn(ctx, r)
}

// Runner runs fn against Tx, or delegates to WithTxFn when set.
type Runner struct {
	Tx       *Tx
	WithTxFn func(ctx context.Context, fn func(tx deliverytx.Repository) error) error
}

func (r Runner) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	if r.WithTxFn != nil {
		return r.WithTxFn(ctx, fn)
	}
	tx := r.Tx
	if tx == nil {
		tx = &Tx{}
	}
	return fn(tx)
}
