package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/ecommerce_catalog/internal/config"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
)

// Consumer is a plain NATS subscriber for review events. The rating worker
// uses the durable JetStream consumer instead; this one serves fan-out
// listeners like the notifier.
type Consumer struct {
	nc     *nats.Conn
	logger *logger.Logger
	sub    *nats.Subscription
}

// NewConsumer connects to NATS and returns a consumer
func NewConsumer(cfg *config.Config, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Infof("Connected to NATS at %s", cfg.NATS.URL)

	return &Consumer{nc: nc, logger: log}, nil
}

// Subscribe attaches a handler to a subject. Handler errors are logged and
// the message is dropped; delivery guarantees belong to the JetStream path.
func (c *Consumer) Subscribe(subject string, handler func(data []byte) error) error {
	sub, err := c.nc.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(msg.Data); err != nil {
			c.logger.Errorf(err, "Failed to handle message on subject %s", subject)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	c.sub = sub
	c.logger.Infof("Subscribed to NATS subject: %s", subject)
	return nil
}

// Close unsubscribes and closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from NATS: %v", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// notificationEvent is the subset of the review event the notifier cares about
type notificationEvent struct {
	EventType string    `json:"event_type"`
	ProductID string    `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// LoggingHandler returns a handler that logs review activity as it happens
func LoggingHandler(log *logger.Logger) func(data []byte) error {
	return func(data []byte) error {
		var event notificationEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("Failed to unmarshal review event", err)
			return err
		}

		log.WithFields(map[string]interface{}{
			"event_type": event.EventType,
			"product_id": event.ProductID,
			"timestamp":  event.Timestamp,
		}).Info("Review activity")

		return nil
	}
}
