package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dinehub/dinehub/internal/auth"
)

// Service serves admin statistics, caching snapshots when a cache is
// configured.
type Service struct {
	source StatsSource
	cache  StatsCache
	logger *slog.Logger
}

// NewService constructs a Service. cache may be nil, in which case every
// request computes fresh stats.
func NewService(source StatsSource, cache StatsCache, logger *slog.Logger) *Service {
	return &Service{source: source, cache: cache, logger: logger}
}

// GetStats returns the platform snapshot for an administrator. Cache
// failures fall through to the source; they are logged, never surfaced.
func (s *Service) GetStats(ctx context.Context, actor auth.Identity) (*Stats, error) {
	if !auth.IsAdmin(actor) {
		return nil, ErrForbidden
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "stats cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.source.CollectStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *stats); err != nil {
			s.logger.WarnContext(ctx, "stats cache write failed", "error", err)
		}
	}
	return stats, nil
}
