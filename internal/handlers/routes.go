package handlers

import (
	"net/http"

	"github.com/embedhost/backend/internal/oembed"
)

// Route paths.
const (
	OEmbedPath       = "/oembed"
	OEmbedSchemaPath = "/oembed/schema"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{Checks: deps.HealthChecks}
	embed := OEmbedHandler{Media: deps.Media, Builder: deps.Builder, Limiter: deps.OEmbedLimiter}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/readyz", health.Ready)
	mux.HandleFunc(OEmbedPath, embed.Handle)
	mux.HandleFunc(OEmbedSchemaPath, embed.Schema)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Media         MediaProvider
	Builder       oembed.Builder
	OEmbedLimiter RateLimiter
	HealthChecks  map[string]Pinger
}
