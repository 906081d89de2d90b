// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nilepress/internal/i18n"
)

// PostStatus represents the publishing state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether the status is one of the fixed enum values.
// Anything else is rejected at the boundary as a validation error.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

// RegionGlobal tags content visible to every region filter.
const RegionGlobal = "GLOBAL"

// Regions is the non-empty set of audience regions a post targets.
// Persisted as a JSONB array so membership filters push down to SQL.
type Regions []string

// Contains reports whether the set includes the given region code.
func (r Regions) Contains(region string) bool {
	for _, v := range r {
		if v == region {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for the JSONB regions column.
func (r Regions) Value() (driver.Value, error) {
	if len(r) == 0 {
		// Every post matches at least GLOBAL; never persist an empty set.
		r = Regions{RegionGlobal}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("regions value: %w", err)
	}
	return b, nil
}

// Scan implements sql.Scanner for the JSONB regions column.
func (r *Regions) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = Regions{RegionGlobal}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("regions scan: unsupported type %T", src)
	}
}

// Post is the central content entity: a bilingual blog post with SEO
// instrumentation. Translatable fields are i18n.Text values; the slug is
// derived once from the English title at creation and only regenerated when
// the field is explicitly cleared.
type Post struct {
	ID       uuid.UUID `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`
	Slug     string    `json:"slug"`

	// Translatable fields
	Title           i18n.Text `json:"title"`
	Description     i18n.Text `json:"description"`
	Content         i18n.Text `json:"content"`
	Excerpt         i18n.Text `json:"excerpt"`
	MetaTitle       i18n.Text `json:"meta_title"`
	MetaDescription i18n.Text `json:"meta_description"`

	// SEO fields
	CanonicalURL string          `json:"canonical_url"`
	OGImage      *string         `json:"og_image,omitempty"`
	SchemaJSON   json.RawMessage `json:"schema_json,omitempty"`
	SEOScore     int             `json:"seo_score"`

	// Content management
	Regions            Regions `json:"regions"`
	FeaturedImageURL   *string `json:"featured_image_url,omitempty"`
	ReadingTimeMinutes int     `json:"reading_time_minutes"`

	// Publishing
	Status      PostStatus `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`

	// Tracking
	ViewCount int        `json:"view_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Relations, populated only when the query requested them.
	Author     *Author    `json:"author,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Tags       []Tag      `json:"tags,omitempty"`
}

// IsDeleted reports whether the post is soft-deleted (still restorable).
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}
