package auth

// Role classifies the acting identity for authorization decisions.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	// RoleSystem marks internal actors such as the payment reconciliation
	// path. It is never assigned to an authenticated request.
	RoleSystem Role = "system"
)

// Identity is the per-request authentication context. It is resolved once at
// the HTTP boundary and passed explicitly into every operation; nothing reads
// it from ambient state.
type Identity struct {
	UserID string
	Role   Role
}

// System is the actor used by payment reconciliation when advancing order
// state. It must not be reachable from any authenticated request path.
var System = Identity{UserID: "system", Role: RoleSystem}

// IsZero reports whether the identity is unset (unauthenticated request).
func (i Identity) IsZero() bool {
	return i.UserID == ""
}
