// Package identity resolves bearer tokens into an authentication context.
// Credential management (passwords, OTP, sessions) is out of scope; the rest
// of the system only ever sees the resolved Identity.
package identity

import (
	"context"
	"errors"

	"github.com/dinehub/dinehub/internal/auth"
)

// ErrUnauthenticated is returned when a token does not resolve to a user.
var ErrUnauthenticated = errors.New("unauthenticated")

// Provider turns an opaque bearer token into an Identity.
type Provider interface {
	Resolve(ctx context.Context, token string) (auth.Identity, error)
}

// StaticProvider resolves tokens from a fixed map. Used in tests and local
// development.
type StaticProvider struct {
	tokens map[string]auth.Identity
}

func NewStaticProvider(tokens map[string]auth.Identity) *StaticProvider {
	return &StaticProvider{tokens: tokens}
}

func (p *StaticProvider) Resolve(_ context.Context, token string) (auth.Identity, error) {
	id, ok := p.tokens[token]
	if !ok {
		return auth.Identity{}, ErrUnauthenticated
	}
	return id, nil
}
