package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// author and a sample bilingual post with one category and tag. It is a
// no-op when authors already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM authors").Scan(&count); err != nil {
		return fmt.Errorf("seed check authors: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO authors (email, display_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "admin@nilepress.local", "Admin", string(hash)).Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	var categoryID string
	err = db.QueryRow(`
		INSERT INTO categories (slug, name, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "technology",
		`{"en": "Technology", "ar": "تكنولوجيا"}`,
		`{"en": "Technology articles", "ar": "مقالات تقنية"}`,
	).Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	var tagID string
	err = db.QueryRow(`
		INSERT INTO tags (slug, name, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "golang", `{"en": "Go", "ar": "جو"}`, "#00ADD8").Scan(&tagID)
	if err != nil {
		return fmt.Errorf("seed insert tag: %w", err)
	}

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (author_id, slug, title, description, content,
		                   meta_title, meta_description, canonical_url,
		                   regions, reading_time_minutes, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'published', NOW())
		RETURNING id
	`, authorID, "welcome-to-nilepress",
		`{"en": "Welcome to NilePress", "ar": "مرحبا بكم في نايل بريس"}`,
		`{"en": "A bilingual content platform.", "ar": "منصة محتوى ثنائية اللغة."}`,
		`{"en": "NilePress serves English and Arabic content with SEO instrumentation.", "ar": "تقدم نايل بريس محتوى باللغتين الإنجليزية والعربية."}`,
		`{"en": "Welcome to NilePress - Bilingual Publishing"}`,
		`{"en": "NilePress is a bilingual content platform serving English and Arabic readers with first-class SEO tooling."}`,
		"http://localhost:8080/blog/welcome-to-nilepress",
		`["GLOBAL"]`, 1,
	).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`, postID, categoryID); err != nil {
		return fmt.Errorf("seed link category: %w", err)
	}
	if _, err := db.Exec(`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
		return fmt.Errorf("seed link tag: %w", err)
	}

	slog.Info("database seeded with default author and sample post",
		"email", "admin@nilepress.local",
	)
	return nil
}
