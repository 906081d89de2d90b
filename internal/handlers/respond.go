// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface: public bilingual blog
// reads, the contact form, the metrics beacon, and the admin content group.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nilepress/internal/content"
)

// Meta is the response metadata echoed with every list payload.
type Meta struct {
	Locale  string `json:"locale,omitempty"`
	Region  string `json:"region,omitempty"`
	Total   *int   `json:"total,omitempty"`
	PerPage *int   `json:"per_page,omitempty"`
	Page    *int   `json:"page,omitempty"`
}

// envelope is the uniform success shape: {"data": ..., "meta": {...}}.
type envelope struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, data any, meta *Meta) {
	writeJSON(w, status, envelope{Data: data, Meta: meta})
}

// respondError maps service errors onto the API error shapes:
// {"message": ...} and, for validation, {"message", "errors": {field: [...]}}.
func respondError(w http.ResponseWriter, err error) {
	var ve *content.ValidationError
	switch {
	case errors.Is(err, content.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  ve.Fields,
		})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
	}
}

// respondBadRequest is for malformed request bodies, before validation.
func respondBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": msg})
}

// pageMeta builds list metadata from a resolved page.
func pageMeta(p *content.PageView) *Meta {
	return &Meta{
		Locale:  p.Locale,
		Region:  p.Region,
		Total:   &p.Total,
		PerPage: &p.PerPage,
		Page:    &p.Page,
	}
}
