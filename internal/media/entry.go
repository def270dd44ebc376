package media

import "context"

// File is the public view of one stored variant of a media entry.
type File struct {
	URL    string
	Width  int
	Height int
}

// Entry is the serialized, read-only snapshot of a media entry consumed by the
// oEmbed builder.
type Entry struct {
	Type      string
	Title     string
	Author    string
	AuthorURL string
	Files     map[string]File
}

// Provider resolves a media entry from the user and media slugs of its permalink.
type Provider interface {
	Lookup(ctx context.Context, userSlug, mediaSlug string) (Entry, error)
}
