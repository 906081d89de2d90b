// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nilepress/internal/models"
	"nilepress/internal/policy"
)

// postColumns is the canonical column list scanned into a models.Post.
const postColumns = `id, author_id, slug, title, description, content, excerpt,
       meta_title, meta_description, canonical_url, og_image, schema_json,
       seo_score, regions, featured_image_url, reading_time_minutes,
       status, published_at, scheduled_at, view_count,
       created_at, updated_at, deleted_at`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// Page is a paginated result set. Total is the count under the applied
// filters, independent of PerPage.
type Page struct {
	Items   []models.Post `json:"items"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int           `json:"total"`
}

// PostQuery is an immutable query descriptor over the posts table. Every
// configuration method returns a new descriptor, so a query value can be
// shared across concurrent requests without cross-request interference.
// Execution only happens through the explicit executor methods (All,
// Paginate, FindBySlug, FindByID).
type PostQuery struct {
	store *PostStore

	conds []string
	args  []any

	withAuthor     bool
	withCategories bool
	withTags       bool
	includeDeleted bool

	orderBy string
	limit   int
}

// Query returns a fresh descriptor ordered by creation date descending and
// excluding soft-deleted posts.
func (s *PostStore) Query() PostQuery {
	return PostQuery{store: s, orderBy: "created_at DESC"}
}

// clone deep-copies the condition slices so appends on the copy never leak
// into the receiver's backing arrays.
func (q PostQuery) clone() PostQuery {
	conds := make([]string, len(q.conds), len(q.conds)+1)
	copy(conds, q.conds)
	args := make([]any, len(q.args), len(q.args)+2)
	copy(args, q.args)
	q.conds = conds
	q.args = args
	return q
}

// WithRelations configures eager loading of the named relations ("author",
// "categories", "tags"). It never executes a query by itself; unknown names
// are ignored.
func (q PostQuery) WithRelations(names ...string) PostQuery {
	c := q.clone()
	for _, name := range names {
		switch name {
		case "author":
			c.withAuthor = true
		case "categories":
			c.withCategories = true
		case "tags":
			c.withTags = true
		}
	}
	return c
}

// FilterLive restricts the query to posts that are live at the given
// instant: published, with a publish timestamp in the past.
func (q PostQuery) FilterLive(now time.Time) PostQuery {
	c := q.clone()
	cond, args := policy.LiveCondition(len(c.args)+1, now)
	c.conds = append(c.conds, cond)
	c.args = append(c.args, args...)
	return c
}

// FilterRegion restricts the query to posts visible to the requested
// region. Requesting GLOBAL (or the empty string) applies no restriction.
func (q PostQuery) FilterRegion(region string) PostQuery {
	cond, args := policy.RegionCondition(len(q.args)+1, region)
	if cond == "" {
		return q
	}
	c := q.clone()
	c.conds = append(c.conds, cond)
	c.args = append(c.args, args...)
	return c
}

// FilterCategorySlug restricts the query to posts belonging to the category
// with the given slug.
func (q PostQuery) FilterCategorySlug(slug string) PostQuery {
	c := q.clone()
	c.conds = append(c.conds, fmt.Sprintf(
		`EXISTS (SELECT 1 FROM post_categories pc
		         JOIN categories cat ON cat.id = pc.category_id
		         WHERE pc.post_id = posts.id AND cat.slug = $%d)`, len(c.args)+1))
	c.args = append(c.args, slug)
	return c
}

// Search restricts the query to posts whose English title or content
// contains the term (case-insensitive substring).
func (q PostQuery) Search(term string) PostQuery {
	c := q.clone()
	n := len(c.args) + 1
	c.conds = append(c.conds, fmt.Sprintf(
		"(title->>'en' ILIKE $%d OR content->>'en' ILIKE $%d)", n, n))
	c.args = append(c.args, "%"+term+"%")
	return c
}

// IncludeDeleted widens the query to soft-deleted posts. Admin paths use
// this for restore; public reads never do.
func (q PostQuery) IncludeDeleted() PostQuery {
	c := q.clone()
	c.includeDeleted = true
	return c
}

// OrderByPublished orders results by publish date descending.
func (q PostQuery) OrderByPublished() PostQuery {
	c := q.clone()
	c.orderBy = "published_at DESC NULLS LAST"
	return c
}

// Limit caps the number of rows returned by All.
func (q PostQuery) Limit(n int) PostQuery {
	c := q.clone()
	c.limit = n
	return c
}

// whereClause renders the accumulated conditions. Soft-deleted rows are
// excluded unless IncludeDeleted was called; that condition takes no
// placeholder so it composes with any argument numbering.
func (q PostQuery) whereClause() string {
	conds := q.conds
	if !q.includeDeleted {
		conds = append([]string{"deleted_at IS NULL"}, conds...)
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// All executes the query and returns every matching post.
func (q PostQuery) All(ctx context.Context) ([]models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts" + q.whereClause() +
		" ORDER BY " + q.orderBy
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}

	rows, err := q.store.db.QueryContext(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := q.hydrate(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Paginate executes the query with LIMIT/OFFSET and returns the page plus
// the total count under the same filters. A page past the end yields an
// empty item list, not an error.
func (q PostQuery) Paginate(ctx context.Context, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM posts" + q.whereClause()
	if err := q.store.db.QueryRowContext(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	query := fmt.Sprintf("SELECT "+postColumns+" FROM posts"+q.whereClause()+
		" ORDER BY "+q.orderBy+" LIMIT %d OFFSET %d", perPage, (page-1)*perPage)

	rows, err := q.store.db.QueryContext(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("paginate posts: %w", err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := q.hydrate(ctx, items); err != nil {
		return nil, err
	}

	return &Page{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// FindBySlug retrieves one post by slug under the query's filters.
// Returns nil if no matching post exists.
func (q PostQuery) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	c := q.clone()
	c.conds = append(c.conds, fmt.Sprintf("slug = $%d", len(c.args)+1))
	c.args = append(c.args, slug)
	return c.findOne(ctx)
}

// FindByID retrieves one post by ID under the query's filters.
// Returns nil if no matching post exists.
func (q PostQuery) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	c := q.clone()
	c.conds = append(c.conds, fmt.Sprintf("id = $%d", len(c.args)+1))
	c.args = append(c.args, id)
	return c.findOne(ctx)
}

func (q PostQuery) findOne(ctx context.Context) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts" + q.whereClause() + " LIMIT 1"

	row := q.store.db.QueryRowContext(ctx, query, q.args...)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}

	posts := []models.Post{*p}
	if err := q.hydrate(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanPost.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*models.Post, error) {
	p := &models.Post{}
	var schema []byte
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Slug, &p.Title, &p.Description, &p.Content,
		&p.Excerpt, &p.MetaTitle, &p.MetaDescription, &p.CanonicalURL,
		&p.OGImage, &schema, &p.SEOScore, &p.Regions, &p.FeaturedImageURL,
		&p.ReadingTimeMinutes, &p.Status, &p.PublishedAt, &p.ScheduledAt,
		&p.ViewCount, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SchemaJSON = schema
	return p, nil
}

// hydrate populates the relations requested via WithRelations for a slice
// of already-scanned posts.
func (q PostQuery) hydrate(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if q.withAuthor {
		if err := q.store.attachAuthors(ctx, posts); err != nil {
			return err
		}
	}
	if q.withCategories {
		if err := q.store.attachCategories(ctx, posts); err != nil {
			return err
		}
	}
	if q.withTags {
		if err := q.store.attachTags(ctx, posts); err != nil {
			return err
		}
	}
	return nil
}

// inPlaceholders renders "$1, $2, …, $n" starting at start.
func inPlaceholders(start, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func (s *PostStore) attachAuthors(ctx context.Context, posts []models.Post) error {
	ids := make([]any, 0, len(posts))
	seen := map[uuid.UUID]bool{}
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}

	query := `SELECT id, email, display_name, created_at, updated_at
	          FROM authors WHERE id IN (` + inPlaceholders(1, len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("load authors: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]models.Author, len(ids))
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Email, &a.DisplayName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return fmt.Errorf("scan author: %w", err)
		}
		byID[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range posts {
		if a, ok := byID[posts[i].AuthorID]; ok {
			author := a
			posts[i].Author = &author
		}
	}
	return nil
}

func (s *PostStore) attachCategories(ctx context.Context, posts []models.Post) error {
	ids := make([]any, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	query := `SELECT pc.post_id, c.id, c.parent_id, c.slug, c.name, c.description,
	                 c.meta_title, c.meta_description, c.schema_json, c.sort_order,
	                 c.created_at, c.updated_at
	          FROM post_categories pc
	          JOIN categories c ON c.id = pc.category_id
	          WHERE pc.post_id IN (` + inPlaceholders(1, len(ids)) + `)
	          ORDER BY c.sort_order`
	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	byPost := map[uuid.UUID][]models.Category{}
	for rows.Next() {
		var postID uuid.UUID
		var c models.Category
		var schema []byte
		if err := rows.Scan(&postID, &c.ID, &c.ParentID, &c.Slug, &c.Name,
			&c.Description, &c.MetaTitle, &c.MetaDescription, &schema,
			&c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		c.SchemaJSON = schema
		byPost[postID] = append(byPost[postID], c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range posts {
		posts[i].Categories = byPost[posts[i].ID]
	}
	return nil
}

func (s *PostStore) attachTags(ctx context.Context, posts []models.Post) error {
	ids := make([]any, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	query := `SELECT pt.post_id, t.id, t.slug, t.name, t.color, t.created_at, t.updated_at
	          FROM post_tags pt
	          JOIN tags t ON t.id = pt.tag_id
	          WHERE pt.post_id IN (` + inPlaceholders(1, len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer rows.Close()

	byPost := map[uuid.UUID][]models.Tag{}
	for rows.Next() {
		var postID uuid.UUID
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Slug, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		byPost[postID] = append(byPost[postID], t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range posts {
		posts[i].Tags = byPost[posts[i].ID]
	}
	return nil
}

// Create inserts a new post and its taxonomy links in one transaction,
// returning the stored row. Category/tag relations on the input are linked
// by their IDs.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create post begin: %w", err)
	}
	defer tx.Rollback()

	result := &models.Post{}
	var schema []byte
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (author_id, slug, title, description, content, excerpt,
		                   meta_title, meta_description, canonical_url, og_image,
		                   schema_json, seo_score, regions, featured_image_url,
		                   reading_time_minutes, status, published_at, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+postColumns,
		p.AuthorID, p.Slug, p.Title, p.Description, p.Content, p.Excerpt,
		p.MetaTitle, p.MetaDescription, p.CanonicalURL, p.OGImage,
		nullableJSON(p.SchemaJSON), p.SEOScore, p.Regions, p.FeaturedImageURL,
		p.ReadingTimeMinutes, p.Status, p.PublishedAt, p.ScheduledAt,
	).Scan(
		&result.ID, &result.AuthorID, &result.Slug, &result.Title,
		&result.Description, &result.Content, &result.Excerpt,
		&result.MetaTitle, &result.MetaDescription, &result.CanonicalURL,
		&result.OGImage, &schema, &result.SEOScore, &result.Regions,
		&result.FeaturedImageURL, &result.ReadingTimeMinutes, &result.Status,
		&result.PublishedAt, &result.ScheduledAt, &result.ViewCount,
		&result.CreatedAt, &result.UpdatedAt, &result.DeletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	result.SchemaJSON = schema

	if err := replaceTaxonomy(ctx, tx, result.ID, p.Categories, p.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create post commit: %w", err)
	}

	result.Categories = p.Categories
	result.Tags = p.Tags
	return result, nil
}

// Update writes the post's content fields together with its SEO score and
// schema JSON in a single statement, so the stored score and schema always
// reflect the stored content. Taxonomy links are replaced in the same
// transaction.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update post begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE posts SET
			slug = $1, title = $2, description = $3, content = $4, excerpt = $5,
			meta_title = $6, meta_description = $7, canonical_url = $8,
			og_image = $9, schema_json = $10, seo_score = $11, regions = $12,
			featured_image_url = $13, reading_time_minutes = $14,
			status = $15, published_at = $16, scheduled_at = $17,
			updated_at = NOW()
		WHERE id = $18 AND deleted_at IS NULL
	`, p.Slug, p.Title, p.Description, p.Content, p.Excerpt,
		p.MetaTitle, p.MetaDescription, p.CanonicalURL,
		p.OGImage, nullableJSON(p.SchemaJSON), p.SEOScore, p.Regions,
		p.FeaturedImageURL, p.ReadingTimeMinutes,
		p.Status, p.PublishedAt, p.ScheduledAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if err := replaceTaxonomy(ctx, tx, p.ID, p.Categories, p.Tags); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update post commit: %w", err)
	}
	return nil
}

// replaceTaxonomy rewrites the category and tag links for a post.
func replaceTaxonomy(ctx context.Context, tx *sql.Tx, postID uuid.UUID, categories []models.Category, tags []models.Tag) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post categories: %w", err)
	}
	for _, c := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
			postID, c.ID); err != nil {
			return fmt.Errorf("link category: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, t := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
			postID, t.ID); err != nil {
			return fmt.Errorf("link tag: %w", err)
		}
	}
	return nil
}

// nullableJSON maps empty JSON payloads to NULL.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

// IncrementViewCount adds exactly one view to a post. The increment runs
// inside the database, so concurrent fetches never lose updates.
func (s *PostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// SoftDelete marks a post inactive without removing it. Returns
// sql.ErrNoRows when the post does not exist or is already deleted.
func (s *PostStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore brings a soft-deleted post back to the visible set.
func (s *PostStore) Restore(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("restore post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Purge permanently removes a post. Unlike SoftDelete this is not
// recoverable.
func (s *PostStore) Purge(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("purge post: %w", err)
	}
	return nil
}

// SlugExists reports whether any post (including soft-deleted ones) holds
// the slug. Used for unique slug generation.
func (s *PostStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("slug exists: %w", err)
	}
	return exists, nil
}
