package payments

import (
	"context"
	"log/slog"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/orders/app/queries"
	"github.com/dinehub/dinehub/internal/orders/domain"
)

type mockGateway struct {
	createSessionFn func(ctx context.Context, req SessionRequest) (*Session, error)
	requests        []SessionRequest
}

func (m *mockGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	m.requests = append(m.requests, req)
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, req)
	}
	return &Session{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}, nil
}

type mockOrderSource struct {
	getOrderFn func(ctx context.Context, orderID string, actor auth.Identity) (*queries.OrderDetail, error)
}

func (m *mockOrderSource) GetOrder(ctx context.Context, orderID string, actor auth.Identity) (*queries.OrderDetail, error) {
	return m.getOrderFn(ctx, orderID, actor)
}

type transitionCall struct {
	orderID string
	actor   auth.Identity
	next    domain.OrderStatus
}

type mockTransitioner struct {
	transitionFn func(ctx context.Context, orderID string, actor auth.Identity, next domain.OrderStatus) (*domain.Order, error)
	calls        []transitionCall
}

func (m *mockTransitioner) TransitionOrder(ctx context.Context, orderID string, actor auth.Identity, next domain.OrderStatus) (*domain.Order, error) {
	m.calls = append(m.calls, transitionCall{orderID: orderID, actor: actor, next: next})
	if m.transitionFn != nil {
		return m.transitionFn(ctx, orderID, actor, next)
	}
	return &domain.Order{ID: orderID, Status: next}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
