// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"nilepress/internal/config"
	"nilepress/internal/i18n"
	"nilepress/internal/models"
	"nilepress/internal/slug"
)

// wordsPerMinute drives the reading time estimate.
const wordsPerMinute = 200

// PostInput carries the writable fields of a post. Translatable fields are
// locale-keyed maps; empty maps clear the field. Slug is a tri-state: nil
// keeps the current slug, empty string regenerates from the English title,
// anything else is slugified and used as given.
type PostInput struct {
	AuthorID uuid.UUID `json:"author_id"`
	Slug     *string   `json:"slug"`

	Title           map[string]string `json:"title"`
	Description     map[string]string `json:"description"`
	Content         map[string]string `json:"content"`
	Excerpt         map[string]string `json:"excerpt"`
	MetaTitle       map[string]string `json:"meta_title"`
	MetaDescription map[string]string `json:"meta_description"`

	CanonicalURL     string   `json:"canonical_url"`
	OGImage          *string  `json:"og_image"`
	FeaturedImageURL *string  `json:"featured_image_url"`
	Regions          []string `json:"regions"`

	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	ScheduledAt *time.Time `json:"scheduled_at"`

	CategoryIDs []uuid.UUID `json:"category_ids"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

func (in *PostInput) validate() error {
	fields := map[string][]string{}
	if strings.TrimSpace(in.Title["en"]) == "" {
		fields["title"] = append(fields["title"], "an English title is required")
	}
	status := models.PostStatus(in.Status)
	if in.Status != "" && !status.Valid() {
		fields["status"] = append(fields["status"], "status must be draft, scheduled or published")
	}
	for _, r := range in.Regions {
		known := false
		for _, v := range config.ContentRegions {
			if r == v {
				known = true
			}
		}
		if !known {
			fields["regions"] = append(fields["regions"], "unknown region "+r)
		}
	}
	if len(fields) > 0 {
		return newValidation(fields)
	}
	return nil
}

// Create builds a post from input, derives its slug from the English title,
// computes reading time, SEO score and schema, and persists everything in
// one transaction.
func (s *Service) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:         in.AuthorID,
		Title:            i18n.Localized(in.Title),
		Description:      i18n.Localized(in.Description),
		Content:          i18n.Localized(in.Content),
		Excerpt:          i18n.Localized(in.Excerpt),
		MetaTitle:        i18n.Localized(in.MetaTitle),
		MetaDescription:  i18n.Localized(in.MetaDescription),
		CanonicalURL:     in.CanonicalURL,
		OGImage:          in.OGImage,
		FeaturedImageURL: in.FeaturedImageURL,
		Regions:          models.Regions(in.Regions),
		Status:           models.PostStatusDraft,
		PublishedAt:      in.PublishedAt,
		ScheduledAt:      in.ScheduledAt,
	}
	if in.Status != "" {
		post.Status = models.PostStatus(in.Status)
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	base := slug.FromTitle(in.Title["en"])
	if in.Slug != nil && *in.Slug != "" {
		base = slug.Generate(*in.Slug)
	}
	unique, err := slug.Unique(base, func(candidate string) (bool, error) {
		return s.posts.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	post.Slug = unique

	if post.CanonicalURL == "" {
		post.CanonicalURL = s.cfg.SiteURL + "/blog/" + post.Slug
	}

	if err := s.attachTaxonomy(ctx, post, in.CategoryIDs, in.TagIDs); err != nil {
		return nil, err
	}
	s.instrument(post)

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update applies input to an existing post and rewrites its content, SEO
// score and schema object as one atomic write. The slug is only regenerated
// when the input explicitly clears it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in PostInput) (*models.Post, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	post, err := s.posts.Query().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	post.Title = i18n.Localized(in.Title)
	post.Description = i18n.Localized(in.Description)
	post.Content = i18n.Localized(in.Content)
	post.Excerpt = i18n.Localized(in.Excerpt)
	post.MetaTitle = i18n.Localized(in.MetaTitle)
	post.MetaDescription = i18n.Localized(in.MetaDescription)
	post.OGImage = in.OGImage
	post.FeaturedImageURL = in.FeaturedImageURL
	post.Regions = models.Regions(in.Regions)
	if in.CanonicalURL != "" {
		post.CanonicalURL = in.CanonicalURL
	}
	if in.Status != "" {
		post.Status = models.PostStatus(in.Status)
	}
	if in.PublishedAt != nil {
		post.PublishedAt = in.PublishedAt
	}
	post.ScheduledAt = in.ScheduledAt
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if in.Slug != nil {
		base := slug.Generate(*in.Slug)
		if *in.Slug == "" {
			base = slug.FromTitle(in.Title["en"])
		}
		if base != post.Slug {
			unique, err := slug.Unique(base, func(candidate string) (bool, error) {
				if candidate == post.Slug {
					return false, nil
				}
				return s.posts.SlugExists(ctx, candidate)
			})
			if err != nil {
				return nil, err
			}
			post.Slug = unique
		}
	}

	if err := s.attachTaxonomy(ctx, post, in.CategoryIDs, in.TagIDs); err != nil {
		return nil, err
	}
	s.instrument(post)

	if err := s.posts.Update(ctx, post); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return post, nil
}

// Publish transitions a post to published (or scheduled, when the given
// time is in the future) and recomputes its instrumentation.
func (s *Service) Publish(ctx context.Context, id uuid.UUID, at *time.Time) (*models.Post, error) {
	post, err := s.posts.Query().
		WithRelations("author", "categories", "tags").
		FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	if at != nil && at.After(now) {
		post.Status = models.PostStatusScheduled
		post.ScheduledAt = at
	} else {
		post.Status = models.PostStatusPublished
		if at != nil {
			post.PublishedAt = at
		} else {
			post.PublishedAt = &now
		}
		post.ScheduledAt = nil
	}
	s.instrument(post)

	if err := s.posts.Update(ctx, post); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return post, nil
}

// Recalculate recomputes the SEO score and schema object for a post and
// persists them with the (unchanged) content in one write.
func (s *Service) Recalculate(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.posts.Query().
		WithRelations("author", "categories", "tags").
		FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	s.instrument(post)
	if err := s.posts.Update(ctx, post); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	return post, nil
}

// Suggestions returns the actionable SEO improvement list for a post.
func (s *Service) Suggestions(ctx context.Context, id uuid.UUID) ([]string, error) {
	post, err := s.posts.Query().
		WithRelations("categories", "tags").
		FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.scorer.SuggestImprovements(post), nil
}

// Delete soft-deletes a post: it disappears from every read that does not
// opt into deleted rows, and can be restored.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Restore brings a soft-deleted post back.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	if err := s.posts.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// instrument recomputes the derived fields that must always match the
// stored content: reading time, SEO score and the schema.org object.
func (s *Service) instrument(post *models.Post) {
	post.ReadingTimeMinutes = readingTime(s.resolver.Resolve(post.Content, s.cfg.DefaultLocale))
	// Schema first: the score credits its presence.
	post.SchemaJSON = s.schema.GenerateJSON(post)
	post.SEOScore = s.scorer.Score(post)
}

// attachTaxonomy loads the referenced categories and tags so relation links
// and instrumentation work from real rows. Unknown IDs are a validation
// error, not a silent skip.
func (s *Service) attachTaxonomy(ctx context.Context, post *models.Post, categoryIDs, tagIDs []uuid.UUID) error {
	post.Categories = nil
	post.Tags = nil
	for _, cid := range categoryIDs {
		cat, err := s.categories.FindByID(ctx, cid)
		if err != nil {
			return err
		}
		if cat == nil {
			return newValidation(map[string][]string{
				"category_ids": {"unknown category " + cid.String()},
			})
		}
		post.Categories = append(post.Categories, *cat)
	}
	for _, tid := range tagIDs {
		tag, err := s.tags.FindByID(ctx, tid)
		if err != nil {
			return err
		}
		if tag == nil {
			return newValidation(map[string][]string{
				"tag_ids": {"unknown tag " + tid.String()},
			})
		}
		post.Tags = append(post.Tags, *tag)
	}
	return nil
}

// readingTime estimates minutes to read at ~200 words per minute, never
// below one minute.
func readingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
