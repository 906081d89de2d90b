// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"nilepress/internal/cache"
	"nilepress/internal/content"
)

// Public groups the handlers for the public read API. List-shaped GET
// responses are cached in Valkey; the cache may be nil (tests, cache-less
// deployments), in which case every request hits the service.
type Public struct {
	svc           *content.Service
	responseCache *cache.ResponseCache
}

// NewPublic creates a new Public handler group.
func NewPublic(svc *content.Service, responseCache *cache.ResponseCache) *Public {
	return &Public{svc: svc, responseCache: responseCache}
}

// query parameter defaults shared by the list endpoints.
func listParams(r *http.Request) (locale, region string, page, perPage int) {
	q := r.URL.Query()
	locale = q.Get("locale")
	if locale == "" {
		locale = "en"
	}
	region = q.Get("region")
	page = intParam(q.Get("page"), 1)
	perPage = intParam(q.Get("per_page"), 10)
	return
}

func intParam(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// cached serves a GET endpoint through the response cache. The build
// function produces the envelope body on miss.
func (p *Public) cached(w http.ResponseWriter, r *http.Request, key string, build func() (any, error)) {
	ctx := r.Context()

	if p.responseCache != nil {
		if payload, ok := p.responseCache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(payload)
			return
		}
	}

	body, err := build()
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := json.Marshal(body)
	if err != nil {
		respondError(w, err)
		return
	}
	if p.responseCache != nil {
		p.responseCache.Set(ctx, key, payload)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(payload)
}

// List handles GET /api/blog.
func (p *Public) List(w http.ResponseWriter, r *http.Request) {
	locale, region, page, perPage := listParams(r)
	key := cache.Key("blog", locale, region, page, perPage)
	p.cached(w, r, key, func() (any, error) {
		result, err := p.svc.ListPublished(r.Context(), locale, region, page, perPage)
		if err != nil {
			return nil, err
		}
		return envelope{Data: result.Items, Meta: pageMeta(result)}, nil
	})
}

// Recent handles GET /api/blog/recent.
func (p *Public) Recent(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	limit := intParam(r.URL.Query().Get("limit"), 5)
	key := cache.Key("blog/recent", locale, "", 0, limit)
	p.cached(w, r, key, func() (any, error) {
		views, err := p.svc.Recent(r.Context(), locale, limit)
		if err != nil {
			return nil, err
		}
		return envelope{Data: views, Meta: &Meta{Locale: locale}}, nil
	})
}

// Search handles GET /api/blog/search. Results are not cached: the term
// space is unbounded.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	locale, region, page, perPage := listParams(r)
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := p.svc.Search(r.Context(), term, locale, region, page, perPage)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, result.Items, pageMeta(result))
}

// ByCategory handles GET /api/blog/category/{categorySlug}.
func (p *Public) ByCategory(w http.ResponseWriter, r *http.Request) {
	locale, region, page, perPage := listParams(r)
	categorySlug := chi.URLParam(r, "categorySlug")
	key := cache.Key("blog/category/"+categorySlug, locale, region, page, perPage)
	p.cached(w, r, key, func() (any, error) {
		result, err := p.svc.ByCategorySlug(r.Context(), categorySlug, locale, region, page, perPage)
		if err != nil {
			return nil, err
		}
		return envelope{Data: result.Items, Meta: pageMeta(result)}, nil
	})
}

// Show handles GET /api/blog/{slug}. Never cached: every fetch counts a
// view.
func (p *Public) Show(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = "en"
	}
	slug := chi.URLParam(r, "slug")

	view, err := p.svc.GetBySlug(r.Context(), slug, locale)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, view, &Meta{Locale: view.Locale})
}

// SEOData handles GET /api/blog/{slug}/seo.
func (p *Public) SEOData(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	key := cache.Key("blog/"+slug+"/seo", "", "", 0, 0)
	p.cached(w, r, key, func() (any, error) {
		view, err := p.svc.SEOData(r.Context(), slug)
		if err != nil {
			return nil, err
		}
		return envelope{Data: view}, nil
	})
}

// SubmitContact handles POST /api/contact.
func (p *Public) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in content.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}

	in.IPAddress = clientIP(r)
	if ua := r.UserAgent(); ua != "" {
		in.UserAgent = &ua
	}
	if ref := r.Referer(); ref != "" {
		in.Referer = &ref
	}

	created, err := p.svc.SubmitContact(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]any{
		"id":     created.ID,
		"status": created.Status,
	}, nil)
}

// RecordMetric handles POST /api/metrics, the web-vitals beacon.
func (p *Public) RecordMetric(w http.ResponseWriter, r *http.Request) {
	var in content.MetricInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}
	if err := p.svc.RecordMetric(r.Context(), in); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
