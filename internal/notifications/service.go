package notifications

import (
	"context"
	"fmt"

	"bookly/internal/shared/config"
	"bookly/pkg/logger"
)

// Service owns the Kafka producer and consumer lifecycle for booking events.
type Service struct {
	publisher Publisher
	consumer  *Consumer
	log       *logger.Logger
}

// NewService wires the producer and consumer from application config.
// When Kafka is disabled it returns a service with a no-op publisher and
// no consumer, so callers never need to branch on the setting.
func NewService(cfg *config.Config) (*Service, error) {
	log := logger.GetDefault()

	if !cfg.Kafka.Enabled {
		log.Info("Kafka disabled, booking events will not be published")
		return &Service{publisher: NoopPublisher{}, log: log}, nil
	}

	producerConfig := DefaultProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.Topic = cfg.Kafka.NotificationTopic

	publisher, err := NewKafkaPublisher(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking event publisher: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroup
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}

	consumer, err := NewConsumer(consumerConfig, defaultHandler(log))
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create booking event consumer: %w", err)
	}

	return &Service{
		publisher: publisher,
		consumer:  consumer,
		log:       log,
	}, nil
}

// Publisher returns the event publisher for booking flows.
func (s *Service) Publisher() Publisher {
	return s.publisher
}

// Start begins consuming booking events when a consumer was configured.
func (s *Service) Start(ctx context.Context) error {
	if s.consumer == nil {
		return nil
	}
	return s.consumer.Start(ctx)
}

// Stop shuts down the consumer and producer.
func (s *Service) Stop() error {
	var firstErr error
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			firstErr = err
		}
	}
	if err := s.publisher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// defaultHandler records delivered events. Outbound channels (email, SMS)
// hang off this hook.
func defaultHandler(log *logger.Logger) Handler {
	return HandlerFunc(func(ctx context.Context, event BookingEvent) error {
		log.InfoContext(ctx, "booking event received",
			"type", string(event.Type),
			"booking_id", event.BookingID,
			"customer_id", event.CustomerID,
		)
		return nil
	})
}
