package oembed

import (
	"errors"
	"net/http"

	"github.com/embedhost/backend/internal/media"
)

var (
	// ErrMethodNotAllowed indicates the request did not use GET.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrBadRequest indicates a missing, malformed or foreign url parameter, or bad size constraints.
	ErrBadRequest = errors.New("bad request")
	// ErrNotImplemented indicates an unsupported response format or media type.
	ErrNotImplemented = errors.New("not implemented")
	// ErrMissingVariant indicates a media entry lacks a file variant needed to describe it.
	ErrMissingVariant = errors.New("media file variant missing")
)

// StatusFor maps an error returned while answering an oEmbed request to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, media.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
