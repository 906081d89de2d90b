// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nilepress/internal/i18n"
)

// Category represents a hierarchical taxonomy node. Each category may have
// one parent; the tree must stay acyclic, which the store enforces on
// reparenting. Categories carry their own SEO sub-fields.
type Category struct {
	ID              uuid.UUID       `json:"id"`
	ParentID        *uuid.UUID      `json:"parent_id,omitempty"`
	Slug            string          `json:"slug"`
	Name            i18n.Text       `json:"name"`
	Description     i18n.Text       `json:"description"`
	MetaTitle       i18n.Text       `json:"meta_title"`
	MetaDescription i18n.Text       `json:"meta_description"`
	SchemaJSON      json.RawMessage `json:"schema_json,omitempty"`
	SortOrder       int             `json:"sort_order"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Virtual fields populated by store methods.
	Children  []Category `json:"children,omitempty"`
	PostCount int        `json:"post_count"`
}
