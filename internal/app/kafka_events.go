package app

import (
	"context"
	"time"

	"shipping-allocation-engine/internal/service/events"
	"shipping-allocation-engine/internal/transport/kafka"
)

const eventHandleTimeout = 5 * time.Second

type eventHandler interface {
	Handle(ctx context.Context, e events.Event) error
}

// makeEventHandler bounds each event by timeout. A timed out event is
// reported as transient, so the consumer retries it.
func makeEventHandler(h eventHandler, timeout time.Duration) kafka.HandleFunc {
	if timeout <= 0 {
		timeout = eventHandleTimeout
	}
	return func(ctx context.Context, e events.Event) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return h.Handle(ctx, e)
	}
}
