// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"nilepress/internal/models"
)

// ErrCategoryCycle is returned when a reparent operation would make the
// category tree cyclic.
var ErrCategoryCycle = errors.New("category reparent would create a cycle")

const categoryColumns = `id, parent_id, slug, name, description, meta_title,
       meta_description, schema_json, sort_order, created_at, updated_at`

// CategoryStore handles category tree operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories ordered by sort order, with per-category
// post counts of visible posts.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`,
		       (SELECT COUNT(*) FROM post_categories pc
		        JOIN posts p ON p.id = pc.post_id AND p.deleted_at IS NULL
		        WHERE pc.category_id = categories.id) AS post_count
		FROM categories
		ORDER BY sort_order, slug
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// FindBySlug retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row, false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row, false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the generated ID.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (parent_id, slug, name, description,
		                        meta_title, meta_description, schema_json, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+categoryColumns,
		c.ParentID, c.Slug, c.Name, c.Description,
		c.MetaTitle, c.MetaDescription, nullableJSON(c.SchemaJSON), c.SortOrder,
	)
	created, err := scanCategory(row, false)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Reparent moves a category under a new parent after verifying the move
// keeps the tree acyclic: the new parent must not be the category itself
// or any of its descendants.
func (s *CategoryStore) Reparent(ctx context.Context, id uuid.UUID, newParent *uuid.UUID) error {
	if newParent != nil {
		if *newParent == id {
			return ErrCategoryCycle
		}
		cursor := *newParent
		for {
			var parent *uuid.UUID
			err := s.db.QueryRowContext(ctx,
				`SELECT parent_id FROM categories WHERE id = $1`, cursor).Scan(&parent)
			if err == sql.ErrNoRows {
				break
			}
			if err != nil {
				return fmt.Errorf("reparent walk: %w", err)
			}
			if parent == nil {
				break
			}
			if *parent == id {
				return ErrCategoryCycle
			}
			cursor = *parent
		}
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET parent_id = $1, updated_at = NOW() WHERE id = $2`,
		newParent, id)
	if err != nil {
		return fmt.Errorf("reparent category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a category. Join rows cascade away; child categories are
// detached by the parent_id foreign key.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func scanCategory(row scanner, withCount bool) (*models.Category, error) {
	c := &models.Category{}
	var schema []byte
	dest := []any{
		&c.ID, &c.ParentID, &c.Slug, &c.Name, &c.Description,
		&c.MetaTitle, &c.MetaDescription, &schema, &c.SortOrder,
		&c.CreatedAt, &c.UpdatedAt,
	}
	if withCount {
		dest = append(dest, &c.PostCount)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	c.SchemaJSON = schema
	return c, nil
}
