// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nilepress/internal/models"
)

// AuthorStore handles author database operations.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore creates a new AuthorStore with the given database connection.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

// FindByID retrieves an author by ID. Returns nil if not found.
func (s *AuthorStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	a := &models.Author{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, created_at, updated_at
		FROM authors WHERE id = $1
	`, id).Scan(&a.ID, &a.Email, &a.DisplayName, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// First returns any author, used by the development seed path and tests.
// Returns nil when no authors exist.
func (s *AuthorStore) First(ctx context.Context) (*models.Author, error) {
	a := &models.Author{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, created_at, updated_at
		FROM authors ORDER BY created_at LIMIT 1
	`).Scan(&a.ID, &a.Email, &a.DisplayName, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first author: %w", err)
	}
	return a, nil
}
