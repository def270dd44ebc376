package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/embedhost/backend/internal/models"
	"github.com/embedhost/backend/internal/repositories"
)

// Store loads published media entries.
type Store interface {
	FindByUserAndSlug(ctx context.Context, username, slug string) (models.MediaEntry, error)
}

// Resolver is a Provider backed by a Store and a Serializer.
type Resolver struct {
	store      Store
	serializer Serializer
}

// NewResolver constructs a Resolver.
func NewResolver(store Store, serializer Serializer) *Resolver {
	return &Resolver{store: store, serializer: serializer}
}

// Lookup loads the entry owned by userSlug and addressed by mediaSlug.
func (r *Resolver) Lookup(ctx context.Context, userSlug, mediaSlug string) (Entry, error) {
	if r == nil || r.store == nil {
		return Entry{}, ErrProviderUnavailable
	}

	entry, err := r.store.FindByUserAndSlug(ctx, userSlug, mediaSlug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Entry{}, fmt.Errorf("%w: %s/%s", ErrNotFound, userSlug, mediaSlug)
		}
		return Entry{}, fmt.Errorf("lookup media %s/%s: %w", userSlug, mediaSlug, err)
	}

	return r.serializer.Serialize(entry), nil
}

var _ Provider = (*Resolver)(nil)
