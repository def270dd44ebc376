package oembed

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/embedhost/backend/internal/media"
	"github.com/embedhost/backend/internal/models"
)

// Version is the oEmbed protocol version of every response.
const Version = "1.0"

// Response types.
const (
	TypePhoto = "photo"
	TypeVideo = "video"
)

// Response is the oEmbed document returned for a media entry.
type Response struct {
	Type         string `json:"type" jsonschema:"enum=photo,enum=video"`
	Version      string `json:"version" jsonschema:"enum=1.0"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	URL          string `json:"url,omitempty" jsonschema:"description=Source of the image; photo responses only"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HTML         string `json:"html,omitempty" jsonschema:"description=Embed markup; video responses only"`
}

// VideoSizing selects how size constraints apply to video responses.
type VideoSizing int

const (
	// VideoSizingOverride replaces a dimension with its constraint whenever one is given.
	VideoSizingOverride VideoSizing = iota
	// VideoSizingFit applies a constraint only when the recorded dimension exceeds it.
	VideoSizingFit
)

// ParseVideoSizing parses "override" or "fit".
func ParseVideoSizing(s string) (VideoSizing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "override":
		return VideoSizingOverride, nil
	case "fit":
		return VideoSizingFit, nil
	default:
		return VideoSizingOverride, fmt.Errorf("unknown video sizing %q", s)
	}
}

var videoEmbed = template.Must(template.New("video").Parse(
	`<video width="{{.Width}}" height="{{.Height}}" controls>` +
		`  <source src="{{.Src}}" type="video/webm">` +
		`   Your browser does not support the video tag.` +
		`</video>`))

// Builder constructs oEmbed responses.
type Builder struct {
	ProviderName string
	VideoSizing  VideoSizing
}

// Build describes entry under the given size constraint. providerURL is the
// root URL of the site answering the request.
func (b Builder) Build(entry media.Entry, c SizeConstraint, providerURL string) (Response, error) {
	resp := Response{
		Version:      Version,
		Title:        entry.Title,
		AuthorName:   entry.Author,
		AuthorURL:    entry.AuthorURL,
		ProviderName: b.ProviderName,
		ProviderURL:  providerURL,
	}

	switch entry.Type {
	case models.MediaTypeImage:
		resp.Type = TypePhoto
		if err := b.photo(&resp, entry, c); err != nil {
			return Response{}, err
		}
	case models.MediaTypeVideo:
		resp.Type = TypeVideo
		if err := b.video(&resp, entry, c); err != nil {
			return Response{}, err
		}
	default:
		return Response{}, fmt.Errorf("%w: media type %q", ErrNotImplemented, entry.Type)
	}

	return resp, nil
}

// photo uses the medium variant, falling back to the thumbnail as a whole when
// the medium variant exceeds either constraint.
func (b Builder) photo(resp *Response, entry media.Entry, c SizeConstraint) error {
	file, ok := entry.Files[models.VariantMedium]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingVariant, models.VariantMedium)
	}

	tooTall := c.MaxHeight != nil && file.Height > *c.MaxHeight
	tooWide := c.MaxWidth != nil && file.Width > *c.MaxWidth
	if tooTall || tooWide {
		file, ok = entry.Files[models.VariantThumb]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingVariant, models.VariantThumb)
		}
	}

	resp.URL = file.URL
	resp.Width = file.Width
	resp.Height = file.Height
	return nil
}

func (b Builder) video(resp *Response, entry media.Entry, c SizeConstraint) error {
	file, ok := entry.Files[models.VariantWebmVideo]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingVariant, models.VariantWebmVideo)
	}

	resp.Width = b.videoDimension(file.Width, c.MaxWidth)
	resp.Height = b.videoDimension(file.Height, c.MaxHeight)

	var html strings.Builder
	err := videoEmbed.Execute(&html, struct {
		Width, Height int
		Src           string
	}{resp.Width, resp.Height, file.URL})
	if err != nil {
		return fmt.Errorf("render video embed: %w", err)
	}
	resp.HTML = html.String()
	return nil
}

func (b Builder) videoDimension(recorded int, limit *int) int {
	if limit == nil {
		return recorded
	}
	if b.VideoSizing == VideoSizingFit && recorded <= *limit {
		return recorded
	}
	return *limit
}
