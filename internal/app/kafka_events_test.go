package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"shipping-allocation-engine/internal/service/events"
)

type ctxKey struct{}

type spyHandler struct {
	called int
	ctx    context.Context
	event  events.Event
	err    error
}

func (s *spyHandler) Handle(ctx context.Context, e events.Event) error {
	s.called++
	s.ctx = ctx
	s.event = e
	return s.err
}

func TestMakeEventHandler_DelegatesWithDeadline(t *testing.T) {
	t.Parallel()

	spy := &spyHandler{}
	h := makeEventHandler(spy, 2*time.Second)

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	in := events.Event{ID: uuid.New(), Type: events.TypeDeliveryStatus, DeliveryID: 7, Status: "picked-up"}

	require.NoError(t, h(ctx, in))
	require.Equal(t, 1, spy.called)
	require.Equal(t, in, spy.event)
	require.Equal(t, "v", spy.ctx.Value(ctxKey{}))

	deadline, ok := spy.ctx.Deadline()
	require.True(t, ok, "expected context with deadline")
	require.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)

	select {
	case <-spy.ctx.Done():
	default:
		t.Fatalf("expected handler context to be canceled after return")
	}
}

func TestMakeEventHandler_PropagatesError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	h := makeEventHandler(&spyHandler{err: sentinel}, 0)

	err := h(context.Background(), events.Event{Type: events.TypeRouteStopCompleted, RouteID: 3})
	require.ErrorIs(t, err, sentinel)
}

func TestMakeEventHandler_DefaultTimeout(t *testing.T) {
	t.Parallel()

	spy := &spyHandler{}
	require.NoError(t, makeEventHandler(spy, 0)(context.Background(), events.Event{}))

	deadline, ok := spy.ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(eventHandleTimeout), deadline, time.Second)
}
