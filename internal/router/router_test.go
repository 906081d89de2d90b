// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nilepress/internal/config"
	"nilepress/internal/content"
	"nilepress/internal/handlers"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Env:           "testing",
		SiteURL:       "http://localhost:8080",
		Locales:       []string{"en", "ar"},
		DefaultLocale: "en",
	}
	svc := content.New(nil, cfg, nil)
	r, limiter := New(handlers.NewPublic(svc, nil), handlers.NewAdmin(svc), 60)
	t.Cleanup(limiter.Stop)
	return r
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestHealthRouteBypassesRateLimit(t *testing.T) {
	cfg := &config.Config{
		Env:           "testing",
		SiteURL:       "http://localhost:8080",
		Locales:       []string{"en", "ar"},
		DefaultLocale: "en",
	}
	svc := content.New(nil, cfg, nil)
	r, limiter := New(handlers.NewPublic(svc, nil), handlers.NewAdmin(svc), 1)
	defer limiter.Stop()

	// Exhaust the public budget.
	req := httptest.NewRequest("GET", "/api/blog/search?q=a", nil)
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("public route: got %d, want 429 after exhausting the limit", rr.Code)
	}

	// Health stays reachable.
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("health request %d: got %d, want 200", i+1, rr.Code)
		}
	}
}

func TestSearchRouteValidatesBeforeStorage(t *testing.T) {
	r := testRouter(t)

	// A too-short term is rejected at the boundary, so no database is
	// needed to serve the error.
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/blog/search?q=x", nil))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("short search: got %d, want 422", rr.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q, want nosniff", got)
	}
}
