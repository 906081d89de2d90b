// Package router sets up all HTTP routes and middleware chains for the
// NilePress API. It organizes routes into the public read surface and the
// admin content group with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nilepress/internal/handlers"
	"nilepress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. rateLimit is the per-IP request budget per
// minute on the public API.
func New(public *handlers.Public, admin *handlers.Admin, rateLimit int) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — exempt from rate limiting.
	r.Get("/health", healthHandler)

	limiter := middleware.NewRateLimiter(rateLimit, time.Minute)

	// Public API — rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Route("/api/blog", func(r chi.Router) {
			r.Get("/", public.List)
			r.Get("/recent", public.Recent)
			r.Get("/search", public.Search)
			r.Get("/category/{categorySlug}", public.ByCategory)
			r.Get("/{slug}", public.Show)
			r.Get("/{slug}/seo", public.SEOData)
		})

		r.Post("/api/contact", public.SubmitContact)
		r.Post("/api/metrics", public.RecordMetric)
	})

	// Admin API — mounted behind the deployment's authenticating edge;
	// not rate limited.
	r.Route("/api/admin", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Post("/", admin.CreatePost)
			r.Put("/{id}", admin.UpdatePost)
			r.Delete("/{id}", admin.DeletePost)
			r.Post("/{id}/publish", admin.PublishPost)
			r.Post("/{id}/restore", admin.RestorePost)
			r.Post("/{id}/seo/recalculate", admin.RecalculateSEO)
			r.Get("/{id}/seo/suggestions", admin.Suggestions)
			r.Get("/{id}/metrics", admin.PostMetrics)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", admin.Contacts)
			r.Put("/{id}/status", admin.UpdateContactStatus)
		})
	})

	return r, limiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
