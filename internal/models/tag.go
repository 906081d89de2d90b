// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"

	"nilepress/internal/i18n"
)

// Tag is a flat taxonomy label with a translatable name and an optional
// display color used by the admin UI.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      i18n.Text `json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
