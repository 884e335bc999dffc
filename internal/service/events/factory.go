package events

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onStatus, onStopCompleted actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			TypeDeliveryStatus:     onStatus,
			TypeRouteStopCompleted: onStopCompleted,
			// старое имя события у мобильного клиента
			"stop.completed": onStopCompleted,
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	fn, ok := f.byType[eventType]
	return fn, ok
}
