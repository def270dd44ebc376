package media

import "errors"

var (
	// ErrNotFound indicates no published media entry matches the requested slugs.
	ErrNotFound = errors.New("media entry not found")
	// ErrProviderUnavailable indicates the media provider is not configured.
	ErrProviderUnavailable = errors.New("media provider unavailable")
)
