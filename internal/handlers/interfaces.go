package handlers

import (
	"context"

	"github.com/embedhost/backend/internal/media"
)

// MediaProvider resolves media entries addressed by oEmbed requests.
type MediaProvider interface {
	Lookup(ctx context.Context, userSlug, mediaSlug string) (media.Entry, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
