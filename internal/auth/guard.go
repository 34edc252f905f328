// Package auth centralizes the ownership and role rules that every order and
// restaurant operation consults. Keeping them in one place avoids the ad-hoc
// per-handler checks that tend to drift apart over time.
package auth

// IsAdmin reports whether the actor holds the admin role.
func IsAdmin(actor Identity) bool {
	return actor.Role == RoleAdmin
}

// OwnerOf reports whether the actor is the owner of a restaurant.
func OwnerOf(restaurantOwnerID string, actor Identity) bool {
	return !actor.IsZero() && actor.UserID == restaurantOwnerID
}

// CanAccessOrder decides read access to a single order: the buyer who placed
// it, or the owner of the restaurant it was placed against. Admins get
// listing-level oversight only, not per-order detail.
func CanAccessOrder(actor Identity, buyerID, restaurantOwnerID string) bool {
	if actor.IsZero() {
		return false
	}
	return actor.UserID == buyerID || actor.UserID == restaurantOwnerID
}

// CanTransitionOrder decides whether the actor may drive a manual status
// change on an order. Only the owning restaurant's owner qualifies; the
// pending_payment to paid transition is reserved for the system actor and is
// checked separately by the transition command.
func CanTransitionOrder(actor Identity, restaurantOwnerID string) bool {
	return OwnerOf(restaurantOwnerID, actor)
}

// CanMutateRestaurant decides whether the actor may change a restaurant or
// its menu. Admins are deliberately excluded: they have read-only oversight.
func CanMutateRestaurant(actor Identity, restaurantOwnerID string) bool {
	return OwnerOf(restaurantOwnerID, actor)
}

// CanListRestaurantOrders decides access to the restaurant-scoped order
// listing: the owner, or an admin exercising read-only oversight.
func CanListRestaurantOrders(actor Identity, restaurantOwnerID string) bool {
	return OwnerOf(restaurantOwnerID, actor) || IsAdmin(actor)
}
