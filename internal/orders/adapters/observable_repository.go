package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dinehub/dinehub/internal/database"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/ports"
	"github.com/dinehub/dinehub/internal/telemetry"
)

type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) CreateWithItems(ctx context.Context, order domain.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.CreateWithItems")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.Int("order.item_count", len(order.Items)),
		attribute.String("operation", "create_with_items"),
	)

	start := time.Now()
	err := r.repo.CreateWithItems(ctx, order)
	r.metrics.RecordQuery(ctx, "create_order_with_items", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}
	telemetry.SetSpanSuccess(span)
	return nil
}

func (r *ObservableRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.GetByID")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("operation", "get_by_id"),
	)

	start := time.Now()
	order, err := r.repo.GetByID(ctx, id)
	r.metrics.RecordQuery(ctx, "get_order", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListByBuyer")
	defer span.End()

	start := time.Now()
	orders, err := r.repo.ListByBuyer(ctx, buyerID)
	r.metrics.RecordQuery(ctx, "list_orders_by_buyer", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.ListByRestaurant")
	defer span.End()

	start := time.Now()
	orders, err := r.repo.ListByRestaurant(ctx, restaurantID)
	r.metrics.RecordQuery(ctx, "list_orders_by_restaurant", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	telemetry.SetSpanSuccess(span)
	return orders, nil
}

func (r *ObservableRepository) TransitionStatus(ctx context.Context, id string, next domain.OrderStatus, allowedFrom []domain.OrderStatus) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.TransitionStatus")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id),
		attribute.String("order.next_status", string(next)),
		attribute.String("operation", "transition_status"),
	)

	start := time.Now()
	order, err := r.repo.TransitionStatus(ctx, id, next, allowedFrom)
	r.metrics.RecordQuery(ctx, "transition_order_status", time.Since(start).Seconds())

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}
	telemetry.SetSpanSuccess(span)
	return order, nil
}
