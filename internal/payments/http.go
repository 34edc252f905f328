package payments

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dinehub/dinehub/internal/identity"
	"github.com/dinehub/dinehub/internal/orders/domain"
	"github.com/dinehub/dinehub/internal/orders/metrics"
)

// SignatureHeader carries the provider's webhook signature.
const SignatureHeader = "Webhook-Signature"

const maxWebhookBody = 256 << 10

// Handler exposes checkout and webhook endpoints.
type Handler struct {
	checkout      *CheckoutService
	reconciler    *Reconciler
	webhookSecret string
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

func NewHandler(checkout *CheckoutService, reconciler *Reconciler, webhookSecret string, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		checkout:      checkout,
		reconciler:    reconciler,
		webhookSecret: webhookSecret,
		metrics:       m,
		logger:        logger,
	}
}

// Register binds the payment handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/checkout", h.startCheckout)
	mux.HandleFunc("/v1/payments/webhook", h.handleWebhook)
}

type startCheckoutPayload struct {
	OrderID string `json:"order_id"`
}

func (h *Handler) startCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	actor, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload startCheckoutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.OrderID == "" {
		writeError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	checkout, err := h.checkout.Start(r.Context(), payload.OrderID, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrGatewayUnavailable):
			writeError(w, http.StatusBadGateway, "payment gateway unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, checkout)
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable payload")
		return
	}

	if err := VerifySignature(payload, r.Header.Get(SignatureHeader), h.webhookSecret, DefaultTolerance, time.Now()); err != nil {
		h.metrics.RecordWebhookRejected(ctx)
		h.logger.WarnContext(ctx, "rejected webhook with invalid signature")
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	if err := h.reconciler.Process(ctx, payload); err != nil {
		switch {
		case errors.Is(err, ErrBadPayload):
			h.metrics.RecordWebhookRejected(ctx)
			writeError(w, http.StatusBadRequest, "malformed payload")
		case errors.Is(err, domain.ErrOrderNotFound):
			// Acknowledge so the provider stops retrying an event we can
			// never apply.
			h.logger.WarnContext(ctx, "webhook references unknown order", "error", err)
			writeJSON(w, http.StatusOK, map[string]any{"received": true})
		default:
			h.logger.ErrorContext(ctx, "failed to process webhook", "error", err)
			writeError(w, http.StatusInternalServerError, "processing failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"received": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
