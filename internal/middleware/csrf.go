package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/embedhost/backend/internal/logging"
)

// CSRF rejects state-changing requests whose Origin (or Referer) does not match
// the request host. Requests to exempt paths pass through untouched so their
// handlers can answer with their own protocol errors.
func CSRF(exemptPaths ...string) func(http.Handler) http.Handler {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exempt[r.URL.Path]; ok || safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !sameOrigin(r) {
				logging.FromContext(r.Context()).Warn("cross-site request rejected",
					"origin", r.Header.Get("Origin"),
					"referer", r.Header.Get("Referer"),
				)
				http.Error(w, "cross-site request forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func sameOrigin(r *http.Request) bool {
	source := r.Header.Get("Origin")
	if source == "" || source == "null" {
		source = r.Header.Get("Referer")
	}
	if source == "" {
		return false
	}

	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
