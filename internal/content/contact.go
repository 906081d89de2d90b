// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"nilepress/internal/config"
	"nilepress/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactInput carries a public contact form submission.
type ContactInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
	Region  string  `json:"region"`
	Locale  string  `json:"locale"`

	// Request metadata, filled by the handler.
	IPAddress string  `json:"-"`
	UserAgent *string `json:"-"`
	Referer   *string `json:"-"`
}

func (in *ContactInput) validate() error {
	fields := map[string][]string{}
	if len(strings.TrimSpace(in.Name)) < 3 {
		fields["name"] = append(fields["name"], "name must be at least 3 characters")
	}
	if !emailPattern.MatchString(in.Email) {
		fields["email"] = append(fields["email"], "a valid email address is required")
	}
	if len(strings.TrimSpace(in.Subject)) < 5 {
		fields["subject"] = append(fields["subject"], "subject must be at least 5 characters")
	}
	if len(strings.TrimSpace(in.Message)) < 20 {
		fields["message"] = append(fields["message"], "message must be at least 20 characters")
	}
	known := false
	for _, r := range config.ContactRegions {
		if in.Region == r {
			known = true
		}
	}
	if !known {
		fields["region"] = append(fields["region"], "region must be one of EG, US, INTL")
	}
	if len(fields) > 0 {
		return newValidation(fields)
	}
	return nil
}

// SubmitContact validates and stores a contact form submission.
func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (*models.ContactSubmission, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	locale := in.Locale
	if !s.cfg.SupportsLocale(locale) {
		locale = s.cfg.DefaultLocale
	}
	return s.contacts.Create(ctx, &models.ContactSubmission{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		Region:    in.Region,
		Locale:    locale,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		Referer:   in.Referer,
	})
}

// Contacts lists submissions for the admin surface, optionally filtered by
// status. An invalid status value is a validation error.
func (s *Service) Contacts(ctx context.Context, status string) ([]models.ContactSubmission, error) {
	cs := models.ContactStatus(status)
	if status != "" && !cs.Valid() {
		return nil, newValidation(map[string][]string{
			"status": {"status must be one of new, read, responded, spam"},
		})
	}
	return s.contacts.List(ctx, cs)
}

// UpdateContactStatus transitions a submission's handling state.
func (s *Service) UpdateContactStatus(ctx context.Context, id uuid.UUID, status string, respondedBy *uuid.UUID) error {
	cs := models.ContactStatus(status)
	if !cs.Valid() {
		return newValidation(map[string][]string{
			"status": {"status must be one of new, read, responded, spam"},
		})
	}
	if err := s.contacts.UpdateStatus(ctx, id, cs, respondedBy); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// MetricInput carries a reported web-vitals sample.
type MetricInput struct {
	PostID          uuid.UUID `json:"post_id"`
	LCP             *float64  `json:"lcp"`
	FID             *float64  `json:"fid"`
	CLS             *float64  `json:"cls"`
	PageLoadTime    *float64  `json:"page_load_time"`
	TimeToFirstByte *float64  `json:"time_to_first_byte"`
	Region          string    `json:"region"`
	DeviceType      string    `json:"device_type"`
	Browser         string    `json:"browser"`
}

// RecordMetric stores a performance sample for an existing post. The post
// must exist but need not be live; samples for unknown posts are rejected.
func (s *Service) RecordMetric(ctx context.Context, in MetricInput) error {
	post, err := s.posts.Query().IncludeDeleted().FindByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	region := in.Region
	if region == "" {
		region = models.RegionGlobal
	}
	return s.metrics.Record(ctx, &models.PerformanceMetric{
		PostID:          in.PostID,
		LCP:             in.LCP,
		FID:             in.FID,
		CLS:             in.CLS,
		PageLoadTime:    in.PageLoadTime,
		TimeToFirstByte: in.TimeToFirstByte,
		Region:          region,
		DeviceType:      in.DeviceType,
		Browser:         in.Browser,
	})
}

// PostMetrics returns recent samples for the admin surface.
func (s *Service) PostMetrics(ctx context.Context, postID uuid.UUID, limit int) ([]models.PerformanceMetric, error) {
	return s.metrics.ForPost(ctx, postID, limit)
}
