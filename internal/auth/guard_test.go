package auth_test

import (
	"testing"

	"github.com/dinehub/dinehub/internal/auth"
)

func TestCanAccessOrder(t *testing.T) {
	buyer := auth.Identity{UserID: "buyer-1", Role: auth.RoleUser}
	owner := auth.Identity{UserID: "owner-1", Role: auth.RoleUser}
	stranger := auth.Identity{UserID: "stranger", Role: auth.RoleUser}
	admin := auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}

	tests := []struct {
		name  string
		actor auth.Identity
		want  bool
	}{
		{"buyer reads own order", buyer, true},
		{"restaurant owner reads order", owner, true},
		{"other user is denied", stranger, false},
		{"admin has no per-order access", admin, false},
		{"unauthenticated is denied", auth.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auth.CanAccessOrder(tt.actor, "buyer-1", "owner-1"); got != tt.want {
				t.Errorf("CanAccessOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		name  string
		actor auth.Identity
		want  bool
	}{
		{"owner may transition", auth.Identity{UserID: "owner-1", Role: auth.RoleUser}, true},
		{"buyer may not transition", auth.Identity{UserID: "buyer-1", Role: auth.RoleUser}, false},
		{"admin may not transition", auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}, false},
		{"unauthenticated may not transition", auth.Identity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auth.CanTransitionOrder(tt.actor, "owner-1"); got != tt.want {
				t.Errorf("CanTransitionOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanMutateRestaurant(t *testing.T) {
	if !auth.CanMutateRestaurant(auth.Identity{UserID: "owner-1", Role: auth.RoleUser}, "owner-1") {
		t.Error("owner should be able to mutate own restaurant")
	}
	if auth.CanMutateRestaurant(auth.Identity{UserID: "owner-2", Role: auth.RoleUser}, "owner-1") {
		t.Error("non-owner should not be able to mutate restaurant")
	}
	if auth.CanMutateRestaurant(auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}, "owner-1") {
		t.Error("admin oversight is read-only")
	}
}

func TestCanListRestaurantOrders(t *testing.T) {
	if !auth.CanListRestaurantOrders(auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin}, "owner-1") {
		t.Error("admin should have listing oversight")
	}
	if auth.CanListRestaurantOrders(auth.Identity{UserID: "stranger", Role: auth.RoleUser}, "owner-1") {
		t.Error("stranger should not list restaurant orders")
	}
}
