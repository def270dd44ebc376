package models

import "time"

// Media types recorded on media entries.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeAudio = "audio"
)

// Processing states of a media entry. Only processed entries are publicly visible.
const (
	MediaStateProcessing = "processing"
	MediaStateProcessed  = "processed"
	MediaStateFailed     = "failed"
)

// Well-known media file variant names.
const (
	VariantOriginal  = "original"
	VariantMedium    = "medium"
	VariantThumb     = "thumb"
	VariantWebmVideo = "webm_video"
)

// MediaEntry is a single uploaded media item together with its stored file variants.
type MediaEntry struct {
	ID            string
	UploaderID    string
	OwnerUsername string
	Slug          string
	Title         string
	MediaType     string
	State         string
	CreatedAt     time.Time
	Files         []MediaFile
}

// MediaFile is one stored rendition of a media entry. For webm_video the
// dimensions hold the recorded medium size of the transcoded video.
type MediaFile struct {
	Name       string
	StorageKey string
	Width      int
	Height     int
}
