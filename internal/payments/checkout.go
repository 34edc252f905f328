package payments

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/skip2/go-qrcode"

	"github.com/dinehub/dinehub/internal/auth"
	"github.com/dinehub/dinehub/internal/orders/app/queries"
	"github.com/dinehub/dinehub/internal/orders/domain"
)

// OrderSource loads order detail on behalf of an actor, enforcing the
// same access rules as the order API.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string, actor auth.Identity) (*queries.OrderDetail, error)
}

// Checkout is the outcome of opening a payment session for an order.
type Checkout struct {
	OrderID     string `json:"order_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	QRCodePNG   string `json:"qr_code_png,omitempty"`
}

// CheckoutService opens hosted payment sessions for pending orders.
type CheckoutService struct {
	gateway    Gateway
	orders     OrderSource
	currency   string
	appBaseURL string
	logger     *slog.Logger
}

func NewCheckoutService(gateway Gateway, orders OrderSource, currency, appBaseURL string, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		gateway:    gateway,
		orders:     orders,
		currency:   currency,
		appBaseURL: appBaseURL,
		logger:     logger,
	}
}

// Start opens a checkout session for the given order. Only the order's
// buyer may start checkout, and only while the order still awaits payment.
func (s *CheckoutService) Start(ctx context.Context, orderID string, actor auth.Identity) (*Checkout, error) {
	detail, err := s.orders.GetOrder(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}

	order := detail.Order
	if order.BuyerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if order.Status != domain.StatusPendingPayment {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrInvalidTransition, order.Status)
	}

	lineItems := make([]LineItem, 0, len(order.Items)+1)
	var itemsTotal int64
	for _, item := range order.Items {
		lineItems = append(lineItems, LineItem{
			Name:            item.Name,
			UnitAmountMinor: item.PriceMinor,
			Quantity:        item.Quantity,
		})
		itemsTotal += item.PriceMinor * int64(item.Quantity)
	}
	// The delivery fee is whatever remains of the snapshotted total, so the
	// charge always matches the persisted order even if the restaurant's
	// fee changed since.
	if fee := order.TotalMinor - itemsTotal; fee > 0 {
		lineItems = append(lineItems, LineItem{Name: "Delivery fee", UnitAmountMinor: fee, Quantity: 1})
	}

	session, err := s.gateway.CreateSession(ctx, SessionRequest{
		Currency:   s.currency,
		LineItems:  lineItems,
		SuccessURL: fmt.Sprintf("%s/checkout/success?orderId=%s", s.appBaseURL, order.ID),
		CancelURL:  fmt.Sprintf("%s/checkout/cancel?orderId=%s", s.appBaseURL, order.ID),
		Metadata: map[string]string{
			"order_id": order.ID,
			"buyer_id": order.BuyerID,
		},
	})
	if err != nil {
		return nil, err
	}

	checkout := &Checkout{
		OrderID:     order.ID,
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}

	if png, err := qrcode.Encode(session.URL, qrcode.Medium, 256); err != nil {
		s.logger.WarnContext(ctx, "failed to render checkout QR code",
			"order_id", order.ID,
			"error", err,
		)
	} else {
		checkout.QRCodePNG = base64.StdEncoding.EncodeToString(png)
	}

	return checkout, nil
}
