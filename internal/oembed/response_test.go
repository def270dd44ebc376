package oembed

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/embedhost/backend/internal/media"
	"github.com/embedhost/backend/internal/models"
)

const providerURL = "http://media.example.com/"

func intPtr(v int) *int { return &v }

func photoEntry() media.Entry {
	return media.Entry{
		Type:      models.MediaTypeImage,
		Title:     "Sunset",
		Author:    "alice",
		AuthorURL: "http://media.example.com/u/alice/",
		Files: map[string]media.File{
			models.VariantMedium: {URL: "https://cdn.example.com/A.jpg", Height: 800, Width: 600},
			models.VariantThumb:  {URL: "https://cdn.example.com/B.jpg", Height: 150, Width: 100},
		},
	}
}

func videoEntry() media.Entry {
	return media.Entry{
		Type:      models.MediaTypeVideo,
		Title:     "Harbour walk",
		Author:    "alice",
		AuthorURL: "http://media.example.com/u/alice/",
		Files: map[string]media.File{
			models.VariantWebmVideo: {URL: "https://cdn.example.com/clip.webm", Width: 640, Height: 360},
		},
	}
}

func TestBuildCommonFields(t *testing.T) {
	b := Builder{ProviderName: "EmbedHost"}

	resp, err := b.Build(photoEntry(), SizeConstraint{}, providerURL)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if resp.Version != "1.0" || resp.Title != "Sunset" || resp.AuthorName != "alice" {
		t.Fatalf("unexpected common fields: %+v", resp)
	}
	if resp.AuthorURL != "http://media.example.com/u/alice/" {
		t.Fatalf("unexpected author url %q", resp.AuthorURL)
	}
	if resp.ProviderName != "EmbedHost" || resp.ProviderURL != providerURL {
		t.Fatalf("unexpected provider fields: %+v", resp)
	}
}

func TestBuildPhoto(t *testing.T) {
	b := Builder{ProviderName: "EmbedHost"}

	cases := []struct {
		name       string
		constraint SizeConstraint
		wantURL    string
		wantHeight int
		wantWidth  int
	}{
		{"unconstrained", SizeConstraint{}, "https://cdn.example.com/A.jpg", 800, 600},
		{"heightExceeded", SizeConstraint{MaxHeight: intPtr(500)}, "https://cdn.example.com/B.jpg", 150, 100},
		{"widthExceeded", SizeConstraint{MaxWidth: intPtr(300)}, "https://cdn.example.com/B.jpg", 150, 100},
		{"onlyWidthExceeded", SizeConstraint{MaxHeight: intPtr(1000), MaxWidth: intPtr(599)}, "https://cdn.example.com/B.jpg", 150, 100},
		{"withinLimits", SizeConstraint{MaxHeight: intPtr(800), MaxWidth: intPtr(600)}, "https://cdn.example.com/A.jpg", 800, 600},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := b.Build(photoEntry(), tc.constraint, providerURL)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if resp.Type != TypePhoto {
				t.Fatalf("expected photo got %q", resp.Type)
			}
			if resp.URL != tc.wantURL || resp.Height != tc.wantHeight || resp.Width != tc.wantWidth {
				t.Fatalf("got url=%s h=%d w=%d want url=%s h=%d w=%d", resp.URL, resp.Height, resp.Width, tc.wantURL, tc.wantHeight, tc.wantWidth)
			}
			if resp.HTML != "" {
				t.Fatalf("photo responses carry no html, got %q", resp.HTML)
			}
		})
	}
}

func TestBuildPhotoMissingVariants(t *testing.T) {
	b := Builder{}

	entry := photoEntry()
	delete(entry.Files, models.VariantMedium)
	if _, err := b.Build(entry, SizeConstraint{}, providerURL); !errors.Is(err, ErrMissingVariant) {
		t.Fatalf("expected ErrMissingVariant got %v", err)
	}

	entry = photoEntry()
	delete(entry.Files, models.VariantThumb)
	if _, err := b.Build(entry, SizeConstraint{}, providerURL); err != nil {
		t.Fatalf("thumbnail is only needed when falling back, got %v", err)
	}
	if _, err := b.Build(entry, SizeConstraint{MaxHeight: intPtr(10)}, providerURL); !errors.Is(err, ErrMissingVariant) {
		t.Fatalf("expected ErrMissingVariant got %v", err)
	}
}

func TestBuildVideo(t *testing.T) {
	b := Builder{ProviderName: "EmbedHost"}

	resp, err := b.Build(videoEntry(), SizeConstraint{MaxWidth: intPtr(320)}, providerURL)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if resp.Type != TypeVideo {
		t.Fatalf("expected video got %q", resp.Type)
	}
	if resp.Width != 320 || resp.Height != 360 {
		t.Fatalf("expected 320x360 got %dx%d", resp.Width, resp.Height)
	}
	if resp.URL != "" {
		t.Fatalf("video responses carry no url, got %q", resp.URL)
	}
	if !strings.Contains(resp.HTML, `<video width="320" height="360" controls>`) {
		t.Fatalf("unexpected video tag: %s", resp.HTML)
	}
	if !strings.Contains(resp.HTML, `<source src="https://cdn.example.com/clip.webm" type="video/webm">`) {
		t.Fatalf("unexpected source tag: %s", resp.HTML)
	}

	want := `<video width="320" height="360" controls>  <source src="https://cdn.example.com/clip.webm" type="video/webm">   Your browser does not support the video tag.</video>`
	if resp.HTML != want {
		t.Fatalf("unexpected html:\n got %s\nwant %s", resp.HTML, want)
	}
}

func TestBuildVideoSizing(t *testing.T) {
	cases := []struct {
		name       string
		sizing     VideoSizing
		constraint SizeConstraint
		wantWidth  int
		wantHeight int
	}{
		{"overrideUnconstrained", VideoSizingOverride, SizeConstraint{}, 640, 360},
		{"overrideGrows", VideoSizingOverride, SizeConstraint{MaxHeight: intPtr(720), MaxWidth: intPtr(1280)}, 1280, 720},
		{"overrideShrinks", VideoSizingOverride, SizeConstraint{MaxHeight: intPtr(180)}, 640, 180},
		{"fitKeepsSmaller", VideoSizingFit, SizeConstraint{MaxHeight: intPtr(720), MaxWidth: intPtr(1280)}, 640, 360},
		{"fitShrinks", VideoSizingFit, SizeConstraint{MaxWidth: intPtr(320)}, 320, 360},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := Builder{VideoSizing: tc.sizing}.Build(videoEntry(), tc.constraint, providerURL)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if resp.Width != tc.wantWidth || resp.Height != tc.wantHeight {
				t.Fatalf("got %dx%d want %dx%d", resp.Width, resp.Height, tc.wantWidth, tc.wantHeight)
			}
		})
	}
}

func TestBuildVideoEscapesSource(t *testing.T) {
	entry := videoEntry()
	entry.Files[models.VariantWebmVideo] = media.File{URL: `https://cdn.example.com/a"onload="x.webm`, Width: 1, Height: 1}

	resp, err := Builder{}.Build(entry, SizeConstraint{}, providerURL)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(resp.HTML, `"onload="`) {
		t.Fatalf("expected source url to be escaped: %s", resp.HTML)
	}
}

func TestBuildVideoMissingVariant(t *testing.T) {
	entry := videoEntry()
	entry.Files = map[string]media.File{}
	if _, err := (Builder{}).Build(entry, SizeConstraint{}, providerURL); !errors.Is(err, ErrMissingVariant) {
		t.Fatalf("expected ErrMissingVariant got %v", err)
	}
}

func TestBuildUnsupportedType(t *testing.T) {
	entry := photoEntry()
	entry.Type = models.MediaTypeAudio

	_, err := Builder{}.Build(entry, SizeConstraint{}, providerURL)
	if !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented got %v", err)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := Builder{ProviderName: "EmbedHost"}

	for _, entry := range []media.Entry{photoEntry(), videoEntry()} {
		var outputs [][]byte
		for i := 0; i < 3; i++ {
			resp, err := b.Build(entry, SizeConstraint{MaxWidth: intPtr(320)}, providerURL)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			out, err := json.Marshal(resp)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			outputs = append(outputs, out)
		}
		for _, out := range outputs[1:] {
			if !bytes.Equal(out, outputs[0]) {
				t.Fatalf("expected identical output got %s and %s", outputs[0], out)
			}
		}
	}
}

func TestParseVideoSizing(t *testing.T) {
	cases := map[string]VideoSizing{"": VideoSizingOverride, "override": VideoSizingOverride, "FIT": VideoSizingFit}
	for in, want := range cases {
		got, err := ParseVideoSizing(in)
		if err != nil || got != want {
			t.Fatalf("ParseVideoSizing(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParseVideoSizing("stretch"); err == nil {
		t.Fatal("expected error for unknown sizing")
	}
}
