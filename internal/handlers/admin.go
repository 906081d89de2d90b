// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nilepress/internal/content"
)

// Admin groups the content management handlers. Authentication is handled
// by the deployment's edge (the group is mounted behind it); these handlers
// only do routing, decoding and service calls.
type Admin struct {
	svc *content.Service
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(svc *content.Service) *Admin {
	return &Admin{svc: svc}
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// CreatePost handles POST /api/admin/posts.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in content.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}
	created, err := a.svc.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created, nil)
}

// UpdatePost handles PUT /api/admin/posts/{id}.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	var in content.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}
	updated, err := a.svc.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated, nil)
}

// PublishPost handles POST /api/admin/posts/{id}/publish. An optional
// {"publish_at": ...} in the future schedules instead of publishing.
func (a *Admin) PublishPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	var body struct {
		PublishAt *time.Time `json:"publish_at"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondBadRequest(w, "invalid JSON body")
			return
		}
	}
	published, err := a.svc.Publish(r.Context(), id, body.PublishAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, published, nil)
}

// DeletePost handles DELETE /api/admin/posts/{id} (soft delete).
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	if err := a.svc.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RestorePost handles POST /api/admin/posts/{id}/restore.
func (a *Admin) RestorePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	if err := a.svc.Restore(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecalculateSEO handles POST /api/admin/posts/{id}/seo/recalculate.
func (a *Admin) RecalculateSEO(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	post, err := a.svc.Recalculate(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"id":          post.ID,
		"seo_score":   post.SEOScore,
		"schema_json": post.SchemaJSON,
	}, nil)
}

// Suggestions handles GET /api/admin/posts/{id}/seo/suggestions.
func (a *Admin) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	suggestions, err := a.svc.Suggestions(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, suggestions, nil)
}

// Contacts handles GET /api/admin/contacts?status=.
func (a *Admin) Contacts(w http.ResponseWriter, r *http.Request) {
	submissions, err := a.svc.Contacts(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, submissions, nil)
}

// UpdateContactStatus handles PUT /api/admin/contacts/{id}/status.
func (a *Admin) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid contact id")
		return
	}
	var body struct {
		Status      string     `json:"status"`
		RespondedBy *uuid.UUID `json:"responded_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "invalid JSON body")
		return
	}
	if err := a.svc.UpdateContactStatus(r.Context(), id, body.Status, body.RespondedBy); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostMetrics handles GET /api/admin/posts/{id}/metrics.
func (a *Admin) PostMetrics(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid post id")
		return
	}
	limit := intParam(r.URL.Query().Get("limit"), 50)
	metrics, err := a.svc.PostMetrics(r.Context(), id, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, metrics, nil)
}
