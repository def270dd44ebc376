// Package urlgen builds public permalinks for users and media entries.
package urlgen

import (
	"net/url"
	"strings"
)

// Path-space markers used by public media URLs: /u/<user>/m/<media>/.
const (
	UserMarker  = "u"
	MediaMarker = "m"
)

// Builder generates absolute URLs rooted at a public base URL.
type Builder struct {
	base string
}

// New returns a Builder for the given base URL, e.g. "https://media.example.com".
func New(baseURL string) Builder {
	return Builder{base: strings.TrimSuffix(baseURL, "/")}
}

// UserProfile returns the profile permalink of a user.
func (b Builder) UserProfile(username string) string {
	return b.base + "/" + UserMarker + "/" + url.PathEscape(username) + "/"
}
