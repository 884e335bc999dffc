package app

import (
	"go.uber.org/dig"

	"shipping-allocation-engine/internal/config"
	"shipping-allocation-engine/internal/logx"
	"shipping-allocation-engine/internal/service/events"
	"shipping-allocation-engine/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, p *events.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.EventsTopic,
				makeEventHandler(p, eventHandleTimeout))
		},
	)
}
