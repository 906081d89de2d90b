// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nilepress/internal/models"
)

// ContactStore handles contact submission database operations.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, region, locale,
       ip_address, user_agent, referer, status, responded_at, responded_by, created_at`

// Create inserts a new submission with status "new" and returns it.
func (s *ContactStore) Create(ctx context.Context, c *models.ContactSubmission) (*models.ContactSubmission, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO contact_submissions
		       (name, email, phone, subject, message, region, locale,
		        ip_address, user_agent, referer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, c.Region, c.Locale,
		c.IPAddress, c.UserAgent, c.Referer,
	)
	created, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return created, nil
}

// List returns submissions newest first, optionally filtered by status.
func (s *ContactStore) List(ctx context.Context, status models.ContactStatus) ([]models.ContactSubmission, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.ContactSubmission
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		submissions = append(submissions, *c)
	}
	return submissions, rows.Err()
}

// UpdateStatus transitions a submission to the given status. Moving to
// "responded" also stamps who responded and when.
func (s *ContactStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ContactStatus, respondedBy *uuid.UUID) error {
	var (
		res sql.Result
		err error
	)
	if status == models.ContactStatusResponded {
		res, err = s.db.ExecContext(ctx, `
			UPDATE contact_submissions
			SET status = $1, responded_at = $2, responded_by = $3
			WHERE id = $4
		`, status, time.Now(), respondedBy, id)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE contact_submissions SET status = $1 WHERE id = $2
		`, status, id)
	}
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanContact(row scanner) (*models.ContactSubmission, error) {
	c := &models.ContactSubmission{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Region, &c.Locale, &c.IPAddress, &c.UserAgent, &c.Referer,
		&c.Status, &c.RespondedAt, &c.RespondedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
