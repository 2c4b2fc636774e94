package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/config"
)

func TestShouldInvalidate(t *testing.T) {
	tests := []struct {
		name   string
		method string
		status int
		want   bool
	}{
		{"created booking", http.MethodPost, http.StatusCreated, true},
		{"updated event", http.MethodPut, http.StatusOK, true},
		{"patched room type", http.MethodPatch, http.StatusOK, true},
		{"deleted booking", http.MethodDelete, http.StatusNoContent, true},
		{"rejected conflict", http.MethodPost, http.StatusConflict, false},
		{"invalid payload", http.MethodPost, http.StatusBadRequest, false},
		{"failed write", http.MethodDelete, http.StatusInternalServerError, false},
		{"plain read", http.MethodGet, http.StatusOK, false},
		{"preflight", http.MethodOptions, http.StatusNoContent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldInvalidate(tt.method, tt.status); got != tt.want {
				t.Fatalf("shouldInvalidate(%s, %d) = %v, want %v", tt.method, tt.status, got, tt.want)
			}
		})
	}
}

func TestCacheKeyFromIsPrefixScoped(t *testing.T) {
	// Invalidation deletes prefix:* so every key the cache writes must
	// start with the configured prefix.
	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         30 * time.Second,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/calendar?from=2026-03-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/calendar")

	key := cacheKeyFrom(cfg, c)
	if !strings.HasPrefix(key, cfg.Prefix+":") {
		t.Fatalf("cache key %q not scoped under prefix %q", key, cfg.Prefix)
	}
}
