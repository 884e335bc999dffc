// Package events applies field events to deliveries and routes.
package events

import (
	"context"
	"errors"
	"strings"

	"shipping-allocation-engine/internal/apperr"
	"shipping-allocation-engine/internal/domain"
	"shipping-allocation-engine/internal/logx"
)

// Processor processes field events.
// Redelivered events are harmless: the status machine rejects a repeated
// status and a stop event names the stop it completes, so a replay against a
// route that already moved on is a conflict. Both are dropped here.
type Processor struct {
	deliveries DeliveryPort
	routes     RoutePort
	logger     logx.Logger
	factory    *actionFactory
}

// NewProcessor creates a new events Processor.
func NewProcessor(deliveries DeliveryPort, routes RoutePort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{deliveries: deliveries, routes: routes, logger: logger}
	p.factory = newActionFactory(p.onStatus, p.onStopCompleted)
	return p
}

// Handle processes a single Event. Unknown types are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Type)
	if !ok {
		p.logger.Debug("event type ignored", logx.String("type", e.Type), logx.String("event_id", e.ID.String()))
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onStatus(ctx context.Context, e Event) error {
	change, err := p.deliveries.UpdateStatus(ctx, domain.StatusUpdate{
		DeliveryID: e.DeliveryID,
		Status:     domain.DeliveryStatus(strings.ToLower(strings.TrimSpace(e.Status))),
		DriverID:   e.DriverID,
		PhotoProof: e.PhotoProof,
		Signature:  e.Signature,
	})
	switch {
	case err == nil:
		p.logger.Debug("status event applied",
			logx.String("event_id", e.ID.String()),
			logx.Int64("delivery_id", e.DeliveryID),
			logx.String("from", string(change.From)),
			logx.String("to", string(change.Delivery.Status)),
		)
		return nil
	case errors.Is(err, apperr.ErrInvalidTransition), errors.Is(err, apperr.ErrNotFound):
		p.logger.Info("status event dropped",
			logx.String("event_id", e.ID.String()),
			logx.Int64("delivery_id", e.DeliveryID),
			logx.Err(err),
		)
		return nil
	default:
		return err
	}
}

func (p *Processor) onStopCompleted(ctx context.Context, e Event) error {
	_, err := p.routes.CompleteStop(ctx, domain.StopCompletion{RouteID: e.RouteID, Stop: e.Stop})
	if errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrNotFound) {
		p.logger.Info("stop event dropped",
			logx.String("event_id", e.ID.String()),
			logx.Int64("route_id", e.RouteID),
			logx.Err(err),
		)
		return nil
	}
	return err
}
