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

// MetricStore records performance samples reported for posts.
type MetricStore struct {
	db *sql.DB
}

// NewMetricStore creates a new MetricStore with the given database connection.
func NewMetricStore(db *sql.DB) *MetricStore {
	return &MetricStore{db: db}
}

// Record inserts a web-vitals sample for a post.
func (s *MetricStore) Record(ctx context.Context, m *models.PerformanceMetric) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO performance_metrics
		       (post_id, lcp, fid, cls, page_load_time, time_to_first_byte,
		        region, device_type, browser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.PostID, m.LCP, m.FID, m.CLS, m.PageLoadTime, m.TimeToFirstByte,
		m.Region, m.DeviceType, m.Browser)
	if err != nil {
		return fmt.Errorf("record metric: %w", err)
	}
	return nil
}

// ForPost returns the most recent samples for a post, newest first.
func (s *MetricStore) ForPost(ctx context.Context, postID uuid.UUID, limit int) ([]models.PerformanceMetric, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, lcp, fid, cls, page_load_time, time_to_first_byte,
		       region, device_type, browser, measured_at
		FROM performance_metrics
		WHERE post_id = $1
		ORDER BY measured_at DESC
		LIMIT $2
	`, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("metrics for post: %w", err)
	}
	defer rows.Close()

	var metrics []models.PerformanceMetric
	for rows.Next() {
		var m models.PerformanceMetric
		err := rows.Scan(&m.ID, &m.PostID, &m.LCP, &m.FID, &m.CLS,
			&m.PageLoadTime, &m.TimeToFirstByte,
			&m.Region, &m.DeviceType, &m.Browser, &m.MeasuredAt)
		if err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
