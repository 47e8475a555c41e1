// Package events publishes domain events to Kafka. The publisher is optional:
// a nil *Publisher is valid and drops every event, so the services never need
// to guard against a missing broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// TopicOrderCreated carries one message per materialized order.
const TopicOrderCreated = "order.created"

// OrderCreated is the wire payload for TopicOrderCreated. Amounts are in
// minor units, matching the database.
type OrderCreated struct {
	OrderID    int64              `json:"order_id"`
	UserID     *int64             `json:"user_id,omitempty"`
	Email      string             `json:"email"`
	Status     string             `json:"status"`
	TotalMinor int64              `json:"total_minor"`
	Items      []OrderCreatedItem `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

type OrderCreatedItem struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	PriceSnapshot int64  `json:"price_snapshot"`
	Qty           int    `json:"qty"`
}

// Publisher writes events to Kafka.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher connects a publisher to the given brokers. Returns nil when
// brokers is empty, which disables publishing.
func NewPublisher(brokers []string, logger *slog.Logger) *Publisher {
	if len(brokers) == 0 {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  TopicOrderCreated,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
		logger: logger,
	}
}

// PublishOrderCreated emits the event keyed by order id. Failures are logged
// and swallowed: the order is already committed and a broker outage must not
// turn a successful checkout into an error.
func (p *Publisher) PublishOrderCreated(ctx context.Context, ev OrderCreated) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("marshal order.created event",
			slog.Int64("order_id", ev.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.OrderID, 10)),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("publish order.created event",
			slog.Int64("order_id", ev.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}

	p.logger.Info("published order.created event", slog.Int64("order_id", ev.OrderID))
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}
