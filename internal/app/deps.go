package app

import (
	"context"
	"fmt"

	"github.com/embedhost/backend/internal/config"
	"github.com/embedhost/backend/internal/db"
	"github.com/embedhost/backend/internal/handlers"
	"github.com/embedhost/backend/internal/media"
	"github.com/embedhost/backend/internal/middleware"
	"github.com/embedhost/backend/internal/oembed"
	"github.com/embedhost/backend/internal/repositories"
	"github.com/embedhost/backend/internal/storage"
	"github.com/embedhost/backend/internal/urlgen"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, pool db.Pool, cfg config.Config) (handlers.Dependencies, error) {
	objects, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
	if err != nil {
		return handlers.Dependencies{}, fmt.Errorf("configure object store: %w", err)
	}

	sizing, err := oembed.ParseVideoSizing(cfg.VideoSizing)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	serializer := media.Serializer{
		URLs:  urlgen.New(cfg.BaseURL),
		Files: objects,
	}

	var provider media.Provider = media.NewResolver(repositories.NewPostgresMediaRepository(pool), serializer)
	if cfg.MediaCacheTTL > 0 {
		provider = media.NewCachingProvider(provider, cfg.MediaCacheTTL)
	}

	return handlers.Dependencies{
		Media: provider,
		Builder: oembed.Builder{
			ProviderName: cfg.ProviderName,
			VideoSizing:  sizing,
		},
		OEmbedLimiter: middleware.NewIPRateLimiter(cfg.RateLimit, 0),
		HealthChecks: map[string]handlers.Pinger{
			"database":     pool,
			"object_store": objects,
		},
	}, nil
}
