package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dinehub/dinehub/internal/orders/domain"
)

// Event type names carried in each message envelope.
const (
	EventOrderCreated       = "order_created"
	EventOrderPaid          = "order_paid"
	EventOrderStatusChanged = "order_status_changed"
)

type envelope struct {
	Type       string `json:"type"`
	OrderID    string `json:"order_id"`
	OccurredAt string `json:"occurred_at"`

	Order      *domain.Order `json:"order,omitempty"`
	FromStatus string        `json:"from_status,omitempty"`
	ToStatus   string        `json:"to_status,omitempty"`
}

// Publisher sends order lifecycle events to a Kafka topic, keyed by order
// id so one order's events stay in partition order.
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		topic: topic,
	}
}

// Topic returns the topic this publisher writes to.
func (p *Publisher) Topic() string {
	return p.topic
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, envelope{
		Type:    EventOrderCreated,
		OrderID: order.ID,
		Order:   &order,
	})
}

func (p *Publisher) PublishOrderPaid(ctx context.Context, orderID string) error {
	return p.publish(ctx, envelope{
		Type:     EventOrderPaid,
		OrderID:  orderID,
		ToStatus: string(domain.StatusPaid),
	})
}

func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	return p.publish(ctx, envelope{
		Type:       EventOrderStatusChanged,
		OrderID:    orderID,
		FromStatus: string(from),
		ToStatus:   string(to),
	})
}

func (p *Publisher) publish(ctx context.Context, event envelope) error {
	event.OccurredAt = time.Now().UTC().Format(time.RFC3339Nano)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}
