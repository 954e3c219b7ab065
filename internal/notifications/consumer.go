package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"bookly/pkg/logger"
)

// Handler processes a single booking event pulled off the topic.
type Handler interface {
	HandleBookingEvent(ctx context.Context, event BookingEvent) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event BookingEvent) error

func (f HandlerFunc) HandleBookingEvent(ctx context.Context, event BookingEvent) error {
	return f(ctx, event)
}

// ConsumerConfig contains configuration for the Kafka event consumer
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
}

// DefaultConsumerConfig returns a default consumer configuration
func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "bookly-notification-workers",
		Topics:           []string{"booking-events"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     false,
	}
}

// Consumer reads booking events from Kafka and dispatches them to a Handler.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	handler       Handler
	log           *logger.Logger
	cancel        context.CancelFunc
}

// NewConsumer creates a new Kafka booking event consumer
func NewConsumer(config *ConsumerConfig, handler Handler) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		config:        config,
		handler:       handler,
		log:           logger.GetDefault(),
	}, nil
}

// Start begins consuming in background goroutines until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors()
	go c.run(ctx)

	c.log.Info("booking event consumer started",
		"group", c.config.GroupID,
		"topics", fmt.Sprintf("%v", c.config.Topics),
	)
	return nil
}

func (c *Consumer) run(ctx context.Context) {
	handler := &groupHandler{handler: c.handler, log: c.log}
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
				c.log.WithError(err).Error("error consuming booking events")
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *Consumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		c.log.WithError(err).Error("consumer group error")
	}
}

// Stop cancels the consume loop and closes the consumer group.
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	return c.consumerGroup.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler.
type groupHandler struct {
	handler Handler
	log     *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		event, err := FromJSON(message.Value)
		if err != nil {
			h.log.WithError(err).Error("failed to decode booking event",
				"topic", message.Topic,
				"partition", message.Partition,
				"offset", message.Offset,
			)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.handler.HandleBookingEvent(session.Context(), event); err != nil {
			h.log.WithError(err).Error("failed to handle booking event",
				"type", string(event.Type),
				"booking_id", event.BookingID,
			)
		}
		session.MarkMessage(message, "")
	}
	return nil
}
