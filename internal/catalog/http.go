package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dinehub/dinehub/internal/identity"
)

// ReviewRouter handles the /reviews subresource of a restaurant. The
// reviews package implements it; the indirection avoids an import cycle.
type ReviewRouter interface {
	RouteReviews(w http.ResponseWriter, r *http.Request, restaurantID string)
}

// Handler exposes restaurant and menu endpoints.
type Handler struct {
	service *Service
	reviews ReviewRouter
}

func NewHandler(service *Service, reviews ReviewRouter) *Handler {
	return &Handler{service: service, reviews: reviews}
}

// Register binds the catalog handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/restaurants", h.handleRestaurants)
	mux.HandleFunc("/v1/restaurants/", h.handleRestaurantSubtree)
}

func (h *Handler) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		restaurants, err := h.service.ListRestaurants(r.Context())
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
	case http.MethodPost:
		h.createRestaurant(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleRestaurantSubtree routes /v1/restaurants/{id}[/menu[/items/{itemID}]|/reviews].
func (h *Handler) handleRestaurantSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/restaurants/"), "/")
	if rest == "" {
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	}

	segments := strings.Split(rest, "/")
	restaurantID := segments[0]

	switch {
	case len(segments) == 1:
		h.restaurantByID(w, r, restaurantID)
	case len(segments) == 2 && segments[1] == "menu":
		h.menu(w, r, restaurantID)
	case len(segments) == 4 && segments[1] == "menu" && segments[2] == "items":
		h.menuItem(w, r, restaurantID, segments[3])
	case len(segments) == 2 && segments[1] == "reviews":
		h.reviews.RouteReviews(w, r, restaurantID)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) restaurantByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		restaurant, err := h.service.GetRestaurant(r.Context(), id)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, restaurant)
	case http.MethodPut, http.MethodPatch:
		actor, ok := identity.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var input RestaurantInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		restaurant, err := h.service.UpdateRestaurant(r.Context(), actor, id, input)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, restaurant)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	restaurant, err := h.service.CreateRestaurant(r.Context(), actor, input)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

func (h *Handler) menu(w http.ResponseWriter, r *http.Request, restaurantID string) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.service.ListMenu(r.Context(), restaurantID)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost, http.MethodPut:
		actor, ok := identity.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var input MenuItemInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		item, err := h.service.UpsertMenuItem(r.Context(), actor, restaurantID, input)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) menuItem(w http.ResponseWriter, r *http.Request, _ string, itemID string) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	actor, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.RemoveMenuItem(r.Context(), actor, itemID); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRestaurantNotFound), errors.Is(err, ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrAlreadyOwner):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
