package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/metrics"
	"github.com/dinehub/dinehub/internal/telemetry"
)

type ObservableCreateOrderHandler struct {
	handler CreateOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCreateOrderHandler(handler CreateOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCreateOrderHandler {
	return &ObservableCreateOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*CreatedOrder, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordOrderCreationDuration(ctx, duration)
		o.metrics.RecordOrderCreated(ctx, success)
	}()

	o.logger.InfoContext(ctx, "creating order",
		"buyer_id", cmd.Actor.UserID,
		"restaurant_id", cmd.RestaurantID,
		"item_count", len(cmd.Items),
	)

	created, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order",
			"error", err,
			"buyer_id", cmd.Actor.UserID,
			"restaurant_id", cmd.RestaurantID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", created.Order.ID),
		attribute.String("order.restaurant_id", created.Order.RestaurantID),
		attribute.Int64("order.total_minor", created.Order.TotalMinor),
		attribute.String("order.status", string(created.Order.Status)),
	)

	o.logger.InfoContext(ctx, "order created",
		"order_id", created.Order.ID,
		"buyer_id", created.Order.BuyerID,
		"total_minor", created.Order.TotalMinor,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return created, nil
}

type ObservableTransitionOrderHandler struct {
	handler TransitionOrderHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableTransitionOrderHandler(handler TransitionOrderHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableTransitionOrderHandler {
	return &ObservableTransitionOrderHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableTransitionOrderHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "TransitionOrderCommand.Handle")
	defer span.End()

	order, err := o.handler.Handle(ctx, cmd)
	o.metrics.RecordTransition(ctx, string(cmd.Next), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to transition order",
			"error", err,
			"order_id", cmd.OrderID,
			"to", cmd.Next,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.status", string(order.Status)),
	)
	o.logger.InfoContext(ctx, "order status changed",
		"order_id", order.ID,
		"to", order.Status,
	)
	telemetry.SetSpanSuccess(span)

	return order, nil
}
