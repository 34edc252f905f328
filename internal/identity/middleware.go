package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/dinehub/dinehub/internal/auth"
)

type contextKey struct{}

// FromContext returns the identity attached by Middleware, if any.
func FromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(auth.Identity)
	return id, ok && !id.IsZero()
}

// WithIdentity attaches an identity to the context. Exported for tests.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware resolves the Authorization bearer token, if present, and attaches
// the identity to the request context. Requests without a valid token pass
// through unauthenticated; each handler decides whether that is acceptable.
func Middleware(provider Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token != "" {
				if id, err := provider.Resolve(r.Context(), token); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
