package handlers

import (
	"net/http"
	"strings"

	"github.com/embedhost/backend/internal/logging"
	"github.com/embedhost/backend/internal/oembed"
)

// OEmbedHandler answers oEmbed discovery requests for media hosted on this site.
type OEmbedHandler struct {
	Media   MediaProvider
	Builder oembed.Builder
	Limiter RateLimiter
}

// Handle implements GET /oembed.
func (h OEmbedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, span := logging.StartSpan(r.Context(), "oembed")
	defer span.End()
	logger := logging.FromContext(ctx)

	// Embedding clients fetch this endpoint from arbitrary origins.
	w.Header().Set("Access-Control-Allow-Origin", "*")

	loc, constraint, err := oembed.ParseRequest(r)
	if err != nil {
		logger.Warn("invalid oembed request", "error", err)
		respondError(ctx, w, oembed.StatusFor(err), publicMessage(err))
		return
	}

	if !allowRequest(h.Limiter, r, "oembed") {
		logger.Warn("oembed rate limit exceeded", "client", clientIP(r))
		respondError(ctx, w, http.StatusTooManyRequests, "too many requests")
		return
	}

	if h.Media == nil {
		logger.Error("media provider unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "media services unavailable")
		return
	}

	entry, err := h.Media.Lookup(ctx, loc.UserSlug, loc.MediaSlug)
	if err != nil {
		logger.Warn("media lookup failed", "user", loc.UserSlug, "media", loc.MediaSlug, "error", err)
		respondError(ctx, w, oembed.StatusFor(err), publicMessage(err))
		return
	}

	resp, err := h.Builder.Build(entry, constraint, providerURL(r))
	if err != nil {
		logger.Warn("build oembed response failed", "user", loc.UserSlug, "media", loc.MediaSlug, "error", err)
		respondError(ctx, w, oembed.StatusFor(err), publicMessage(err))
		return
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

// Schema implements GET /oembed/schema.
func (h OEmbedHandler) Schema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	respondJSON(r.Context(), w, http.StatusOK, oembed.Schema())
}

// publicMessage hides internal failure details from clients.
func publicMessage(err error) string {
	if oembed.StatusFor(err) == http.StatusInternalServerError {
		return "unable to describe media"
	}
	return err.Error()
}

// providerURL returns the root URL of the site as seen by the client.
func providerURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}
