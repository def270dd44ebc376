package media

import "github.com/embedhost/backend/internal/models"

// URLGenerator builds user permalinks.
type URLGenerator interface {
	UserProfile(username string) string
}

// FileLocator maps storage keys to public URLs.
type FileLocator interface {
	PublicURL(key string) string
}

// Serializer converts stored media entries into their public representation.
type Serializer struct {
	URLs  URLGenerator
	Files FileLocator
}

// Serialize builds the public snapshot of entry.
func (s Serializer) Serialize(entry models.MediaEntry) Entry {
	out := Entry{
		Type:   entry.MediaType,
		Title:  entry.Title,
		Author: entry.OwnerUsername,
		Files:  make(map[string]File, len(entry.Files)),
	}
	if s.URLs != nil {
		out.AuthorURL = s.URLs.UserProfile(entry.OwnerUsername)
	}

	for _, f := range entry.Files {
		location := f.StorageKey
		if s.Files != nil {
			location = s.Files.PublicURL(f.StorageKey)
		}
		out.Files[f.Name] = File{URL: location, Width: f.Width, Height: f.Height}
	}

	return out
}
