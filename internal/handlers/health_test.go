package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

func TestHealthHandlerHandle(t *testing.T) {
	handler := HealthHandler{}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected json content type got %s", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec = httptest.NewRecorder()

	handler.Handle(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected method not allowed got %d", rec.Code)
	}
}

func TestHealthHandlerReady(t *testing.T) {
	cases := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
		wantDB     string
	}{
		{"noChecks", nil, http.StatusOK, ""},
		{"allHealthy", map[string]Pinger{"database": pingerStub{}, "storage": pingerStub{}}, http.StatusOK, "ok"},
		{"databaseDown", map[string]Pinger{"database": pingerStub{err: errors.New("down")}, "storage": pingerStub{}}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := HealthHandler{Checks: tc.checks}

			rec := httptest.NewRecorder()
			handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d got %d", tc.wantStatus, rec.Code)
			}

			var body struct {
				Status     string            `json:"status"`
				Components map[string]string `json:"components"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Components["database"] != tc.wantDB {
				t.Fatalf("unexpected database status %q", body.Components["database"])
			}
		})
	}
}
