package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/embedhost/backend/internal/logging"
)

// HealthHandler responds with service health information.
type HealthHandler struct {
	// Checks are consulted by the readiness probe, keyed by component name.
	Checks  map[string]Pinger
	Timeout time.Duration
}

// Handle implements GET /healthz.
func (HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready implements GET /readyz.
func (h HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	components := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.Checks[name].Ping(ctx); err != nil {
			logging.FromContext(ctx).Error("readiness check failed", "component", name, "error", err)
			components[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "unavailable"
	}
	respondJSON(ctx, w, status, map[string]any{"status": overall, "components": components})
}
