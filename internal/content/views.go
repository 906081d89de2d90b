// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nilepress/internal/models"
)

// PostView is the public projection of a post: every translatable field
// collapsed to a single display string for the requested locale.
type PostView struct {
	ID              uuid.UUID `json:"id"`
	Slug            string    `json:"slug"`
	Locale          string    `json:"locale"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content,omitempty"`
	ContentHTML     string    `json:"content_html,omitempty"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`

	CanonicalURL     string          `json:"canonical_url"`
	OGImage          *string         `json:"og_image,omitempty"`
	FeaturedImageURL *string         `json:"featured_image_url,omitempty"`
	SchemaJSON       json.RawMessage `json:"schema_json,omitempty"`
	SEOScore         int             `json:"seo_score"`

	Regions            models.Regions `json:"regions"`
	ReadingTimeMinutes int            `json:"reading_time_minutes"`
	PublishedAt        *time.Time     `json:"published_at,omitempty"`
	ViewCount          int            `json:"view_count"`

	Author     *AuthorView    `json:"author,omitempty"`
	Categories []CategoryView `json:"categories,omitempty"`
	Tags       []TagView      `json:"tags,omitempty"`
}

// AuthorView is the public author reference embedded in a post view.
type AuthorView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CategoryView is the resolved category reference embedded in a post view.
type CategoryView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// TagView is the resolved tag reference embedded in a post view.
type TagView struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// PageView is a paginated list of resolved posts plus the request context
// the handlers echo back in the response meta.
type PageView struct {
	Items   []PostView `json:"items"`
	Locale  string     `json:"locale"`
	Region  string     `json:"region"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Total   int        `json:"total"`
}

// SEOView is the metadata-only projection consumed by page heads.
type SEOView struct {
	Slug            string          `json:"slug"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	OGImage         *string         `json:"og_image,omitempty"`
	CanonicalURL    string          `json:"canonical_url"`
	SchemaJSON      json.RawMessage `json:"schema_json,omitempty"`
}
