package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/catalog"
	catalogmemory "github.com/dinehub/dinehub/internal/catalog/memory"
	"github.com/dinehub/dinehub/internal/identity"
	idemmemory "github.com/dinehub/dinehub/internal/idempotency/memory"
	"github.com/dinehub/dinehub/internal/kafka"
	"github.com/dinehub/dinehub/internal/orders/adapters/memory"
	"github.com/dinehub/dinehub/internal/orders/app"
	"github.com/dinehub/dinehub/internal/orders/app/commands"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/metrics"
	"github.com/dinehub/dinehub/internal/users"
	usersmemory "github.com/dinehub/dinehub/internal/users/memory"
)

type testServer struct {
	mux     *http.ServeMux
	service *app.Service
	repo    *memory.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	catalogStore := catalogmemory.NewStore()
	if err := catalogStore.CreateRestaurant(context.Background(), catalog.Restaurant{
		ID:               "rest-1",
		OwnerID:          "owner-1",
		Name:             "Napoli Express",
		DeliveryFeeMinor: 250,
		Available:        true,
	}); err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	if err := catalogStore.UpsertMenuItem(context.Background(), catalog.MenuItem{
		ID:           "menu-pizza",
		RestaurantID: "rest-1",
		Name:         "Margherita",
		Category:     "mains",
		PriceMinor:   1200,
		Available:    true,
	}); err != nil {
		t.Fatalf("seed menu item: %v", err)
	}

	userStore := usersmemory.NewStore()
	userStore.Put(users.User{ID: "buyer-1", FirstName: "Ada", Email: "ada@example.com"})

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	m, err := metrics.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	repo := memory.NewRepository()
	service := app.NewService(
		repo,
		catalogStore,
		userStore,
		kafka.NewNoopEventBus(),
		idemmemory.NewStore(),
		slog.New(slog.DiscardHandler),
		m,
	)

	mux := http.NewServeMux()
	NewHandler(service).Register(mux)

	return &testServer{mux: mux, service: service, repo: repo}
}

func (ts *testServer) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, r)
	return rec
}

func asActor(r *http.Request, actor auth.Identity) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), actor))
}

var (
	testBuyer = auth.Identity{UserID: "buyer-1", Role: auth.RoleUser}
	testOwner = auth.Identity{UserID: "owner-1", Role: auth.RoleUser}
)

const validOrderBody = `{"restaurant_id":"rest-1","items":[{"menu_item_id":"menu-pizza","quantity":2}]}`

func (ts *testServer) placeOrder(t *testing.T) commands.CreatedOrder {
	t.Helper()

	r := asActor(httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewBufferString(validOrderBody)), testBuyer)
	rec := ts.do(r)
	if rec.Code != http.StatusCreated {
		t.Fatalf("place order: status = %d: %s", rec.Code, rec.Body)
	}

	var created commands.CreatedOrder
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created order: %v", err)
	}
	return created
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("creates a pending order with snapshotted prices", func(t *testing.T) {
		ts := newTestServer(t)

		created := ts.placeOrder(t)
		if created.Order.Status != domain.StatusPendingPayment {
			t.Errorf("status = %q, want pending_payment", created.Order.Status)
		}
		// 2x1200 plus the 250 delivery fee.
		if created.Order.TotalMinor != 2650 {
			t.Errorf("TotalMinor = %d, want 2650", created.Order.TotalMinor)
		}
		if len(created.Order.Items) != 1 || created.Order.Items[0].PriceMinor != 1200 {
			t.Errorf("unexpected items: %+v", created.Order.Items)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewBufferString(validOrderBody)))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown restaurant is not found", func(t *testing.T) {
		ts := newTestServer(t)

		body := `{"restaurant_id":"ghost","items":[{"menu_item_id":"menu-pizza","quantity":1}]}`
		rec := ts.do(asActor(httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewBufferString(body)), testBuyer))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("empty cart is invalid", func(t *testing.T) {
		ts := newTestServer(t)

		body := `{"restaurant_id":"rest-1","items":[]}`
		rec := ts.do(asActor(httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewBufferString(body)), testBuyer))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("replays the stored response for a repeated idempotency key", func(t *testing.T) {
		ts := newTestServer(t)

		request := func() *http.Request {
			r := asActor(httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewBufferString(validOrderBody)), testBuyer)
			r.Header.Set("Idempotency-Key", "key-1")
			return r
		}

		first := ts.do(request())
		if first.Code != http.StatusCreated {
			t.Fatalf("first request: status = %d: %s", first.Code, first.Body)
		}
		second := ts.do(request())
		if second.Code != http.StatusCreated {
			t.Fatalf("second request: status = %d", second.Code)
		}
		if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
			t.Error("replayed response should be byte-identical to the original")
		}
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	ts := newTestServer(t)
	created := ts.placeOrder(t)

	t.Run("buyer reads own order", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders/"+created.Order.ID, nil), testBuyer))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		stranger := auth.Identity{UserID: "stranger", Role: auth.RoleUser}
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders/"+created.Order.ID, nil), stranger))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders/ghost", nil), testBuyer))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestListOrdersEndpoint(t *testing.T) {
	ts := newTestServer(t)
	created := ts.placeOrder(t)

	decodeOrders := func(t *testing.T, rec *httptest.ResponseRecorder) []domain.Order {
		t.Helper()
		var payload struct {
			Orders []domain.Order `json:"orders"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode orders: %v", err)
		}
		return payload.Orders
	}

	t.Run("defaults to the buyer's own orders", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders", nil), testBuyer))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		orders := decodeOrders(t, rec)
		if len(orders) != 1 || orders[0].ID != created.Order.ID {
			t.Errorf("unexpected orders: %+v", orders)
		}
	})

	t.Run("restaurant scope requires a restaurant id", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders?scope=restaurant", nil), testOwner))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("owner lists restaurant orders", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders?scope=restaurant&restaurant_id=rest-1", nil), testOwner))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if orders := decodeOrders(t, rec); len(orders) != 1 {
			t.Errorf("expected 1 order, got %d", len(orders))
		}
	})

	t.Run("buyer may not list restaurant orders", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders?scope=restaurant&restaurant_id=rest-1", nil), testBuyer))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("rejects unknown scopes", func(t *testing.T) {
		rec := ts.do(asActor(httptest.NewRequest(http.MethodGet, "/v1/orders?scope=everything", nil), testBuyer))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	statusRequest := func(orderID, status string, actor auth.Identity) *http.Request {
		body := bytes.NewBufferString(`{"status":"` + status + `"}`)
		return asActor(httptest.NewRequest(http.MethodPost, "/v1/orders/"+orderID+"/status", body), actor)
	}

	markPaid := func(t *testing.T, ts *testServer, orderID string) {
		t.Helper()
		if _, err := ts.repo.TransitionStatus(context.Background(), orderID, domain.StatusPaid,
			[]domain.OrderStatus{domain.StatusPendingPayment}); err != nil {
			t.Fatalf("mark paid: %v", err)
		}
	}

	t.Run("owner advances a paid order", func(t *testing.T) {
		ts := newTestServer(t)
		created := ts.placeOrder(t)
		markPaid(t, ts, created.Order.ID)

		rec := ts.do(statusRequest(created.Order.ID, "preparing", testOwner))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		var payload struct {
			Order domain.Order `json:"order"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if payload.Order.Status != domain.StatusPreparing {
			t.Errorf("status = %q, want preparing", payload.Order.Status)
		}
	})

	t.Run("buyer may not drive fulfilment", func(t *testing.T) {
		ts := newTestServer(t)
		created := ts.placeOrder(t)
		markPaid(t, ts, created.Order.ID)

		rec := ts.do(statusRequest(created.Order.ID, "preparing", testBuyer))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("paid is unreachable through the API", func(t *testing.T) {
		ts := newTestServer(t)
		created := ts.placeOrder(t)

		rec := ts.do(statusRequest(created.Order.ID, "paid", testOwner))
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		ts := newTestServer(t)
		created := ts.placeOrder(t)

		rec := ts.do(statusRequest(created.Order.ID, "teleported", testOwner))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid transition conflicts", func(t *testing.T) {
		ts := newTestServer(t)
		created := ts.placeOrder(t)

		// Still pending payment, so preparing is out of reach.
		rec := ts.do(statusRequest(created.Order.ID, "out_for_delivery", testOwner))
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})
}
