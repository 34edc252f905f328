package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dinehub/dinehub/internal/kafka"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
	"github.com/dinehub/dinehub/internal/telemetry"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderCreated(ctx context.Context, order domain.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("event.type", "order_created"),
	)

	start := time.Now()
	err := e.bus.PublishOrderCreated(ctx, order)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order_created", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}
	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderPaid(ctx context.Context, orderID string) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderPaid")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("event.type", "order_paid"),
	)

	start := time.Now()
	err := e.bus.PublishOrderPaid(ctx, orderID)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order_paid", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}
	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderStatusChanged(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderStatusChanged")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", orderID),
		attribute.String("event.type", "order_status_changed"),
		attribute.String("from", string(from)),
		attribute.String("to", string(to)),
	)

	start := time.Now()
	err := e.bus.PublishOrderStatusChanged(ctx, orderID, from, to)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order_status_changed", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}
	telemetry.SetSpanSuccess(span)
	return nil
}
