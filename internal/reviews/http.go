package reviews

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dinehub/dinehub/internal/catalog"
	"github.com/dinehub/dinehub/internal/identity"
)

// Handler exposes review endpoints under the restaurant resource.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RouteReviews serves POST and GET on /v1/restaurants/{id}/reviews. It is
// called by the restaurant router once the path is matched.
func (h *Handler) RouteReviews(w http.ResponseWriter, r *http.Request, restaurantID string) {
	switch r.Method {
	case http.MethodPost:
		h.submit(w, r, restaurantID)
	case http.MethodGet:
		h.list(w, r, restaurantID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type submitPayload struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, restaurantID string) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	review, err := h.service.Submit(r.Context(), actor, SubmitReviewInput{
		RestaurantID: restaurantID,
		Rating:       payload.Rating,
		Comment:      strings.TrimSpace(payload.Comment),
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrRestaurantNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidRating):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDuplicateReview):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, restaurantID string) {
	result, err := h.service.ListForRestaurant(r.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, catalog.ErrRestaurantNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": result})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
