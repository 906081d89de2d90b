// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the service layer tying the stores to the publication
// policy, translation resolution and SEO instrumentation. Public reads only
// ever see live posts; admin writes recompute the SEO score and schema
// object together with the content they describe.
package content

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"nilepress/internal/config"
	"nilepress/internal/i18n"
	"nilepress/internal/markdown"
	"nilepress/internal/models"
	"nilepress/internal/policy"
	"nilepress/internal/seo"
	"nilepress/internal/store"
)

// Invalidator drops cached responses after a content mutation. A nil
// invalidator disables invalidation (tests, cache-less deployments).
type Invalidator interface {
	InvalidatePosts(ctx context.Context)
}

// Service exposes the content platform's use cases.
type Service struct {
	cfg *config.Config

	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	authors    *store.AuthorStore
	contacts   *store.ContactStore
	metrics    *store.MetricStore

	policy   *policy.Policy
	resolver *i18n.Resolver
	scorer   *seo.Scorer
	schema   *seo.SchemaGenerator

	inv Invalidator
}

// New wires a Service over the given database connection.
func New(db *sql.DB, cfg *config.Config, inv Invalidator) *Service {
	resolver := i18n.NewResolver(cfg.DefaultLocale)
	return &Service{
		cfg:        cfg,
		posts:      store.NewPostStore(db),
		categories: store.NewCategoryStore(db),
		tags:       store.NewTagStore(db),
		authors:    store.NewAuthorStore(db),
		contacts:   store.NewContactStore(db),
		metrics:    store.NewMetricStore(db),
		policy:     policy.New(config.ContentRegions),
		resolver:   resolver,
		scorer:     seo.NewScorer(resolver),
		schema:     seo.NewSchemaGenerator(resolver, cfg.SiteURL),
		inv:        inv,
	}
}

// liveQuery is the base for every public read: live posts only, with
// relations loaded for the projection, newest publications first.
func (s *Service) liveQuery() store.PostQuery {
	return s.posts.Query().
		FilterLive(time.Now()).
		WithRelations("author", "categories", "tags").
		OrderByPublished()
}

// normalize clamps locale and region to supported values. Unknown locales
// fall back to the default; unknown regions fall back to GLOBAL.
func (s *Service) normalize(locale, region string) (string, string) {
	if !s.cfg.SupportsLocale(locale) {
		locale = s.cfg.DefaultLocale
	}
	if region == "" || !s.policy.KnownRegion(region) {
		region = models.RegionGlobal
	}
	return locale, region
}

// ListPublished returns a page of live posts visible to the region,
// resolved for the locale.
func (s *Service) ListPublished(ctx context.Context, locale, region string, page, perPage int) (*PageView, error) {
	locale, region = s.normalize(locale, region)
	result, err := s.liveQuery().FilterRegion(region).Paginate(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.pageView(result, locale, region), nil
}

// GetBySlug returns one live post resolved for the locale and counts the
// view. Draft, scheduled, soft-deleted and missing slugs all yield the same
// ErrNotFound.
func (s *Service) GetBySlug(ctx context.Context, slug, locale string) (*PostView, error) {
	locale, _ = s.normalize(locale, "")
	post, err := s.liveQuery().FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	if err := s.posts.IncrementViewCount(ctx, post.ID); err != nil {
		// The read should not fail because view tracking did.
		slog.Error("view count increment failed", "slug", slug, "error", err)
	} else {
		post.ViewCount++
	}

	view := s.view(post, locale, true)
	return &view, nil
}

// ByCategorySlug returns a page of live posts in the category.
func (s *Service) ByCategorySlug(ctx context.Context, categorySlug, locale, region string, page, perPage int) (*PageView, error) {
	locale, region = s.normalize(locale, region)
	result, err := s.liveQuery().
		FilterRegion(region).
		FilterCategorySlug(categorySlug).
		Paginate(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.pageView(result, locale, region), nil
}

// Search returns live posts whose English title or content contains the
// term. Terms shorter than 2 characters are rejected before any query runs.
func (s *Service) Search(ctx context.Context, term, locale, region string, page, perPage int) (*PageView, error) {
	if len([]rune(term)) < 2 {
		return nil, newValidation(map[string][]string{
			"q": {"search term must be at least 2 characters"},
		})
	}
	locale, region = s.normalize(locale, region)
	result, err := s.liveQuery().
		FilterRegion(region).
		Search(term).
		Paginate(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return s.pageView(result, locale, region), nil
}

// Recent returns the most recently published live posts.
func (s *Service) Recent(ctx context.Context, locale string, limit int) ([]PostView, error) {
	locale, _ = s.normalize(locale, "")
	if limit < 1 || limit > 50 {
		limit = 5
	}
	posts, err := s.liveQuery().Limit(limit).All(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]PostView, len(posts))
	for i := range posts {
		views[i] = s.view(&posts[i], locale, false)
	}
	return views, nil
}

// SEOData returns the metadata-only projection for a live post.
func (s *Service) SEOData(ctx context.Context, slug string) (*SEOView, error) {
	post, err := s.posts.Query().FilterLive(time.Now()).FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return &SEOView{
		Slug:            post.Slug,
		MetaTitle:       s.resolver.Resolve(post.MetaTitle, s.cfg.DefaultLocale),
		MetaDescription: s.resolver.Resolve(post.MetaDescription, s.cfg.DefaultLocale),
		OGImage:         post.OGImage,
		CanonicalURL:    post.CanonicalURL,
		SchemaJSON:      post.SchemaJSON,
	}, nil
}

// view builds the resolved projection of a post. withBody controls whether
// the full content and its rendered HTML are included; list endpoints skip
// them to keep payloads small.
func (s *Service) view(post *models.Post, locale string, withBody bool) PostView {
	v := PostView{
		ID:                 post.ID,
		Slug:               post.Slug,
		Locale:             locale,
		Title:              s.resolver.Resolve(post.Title, locale),
		Description:        s.resolver.Resolve(post.Description, locale),
		Excerpt:            s.resolver.Resolve(post.Excerpt, locale),
		MetaTitle:          s.resolver.Resolve(post.MetaTitle, locale),
		MetaDescription:    s.resolver.Resolve(post.MetaDescription, locale),
		CanonicalURL:       post.CanonicalURL,
		OGImage:            post.OGImage,
		FeaturedImageURL:   post.FeaturedImageURL,
		SchemaJSON:         post.SchemaJSON,
		SEOScore:           post.SEOScore,
		Regions:            post.Regions,
		ReadingTimeMinutes: post.ReadingTimeMinutes,
		PublishedAt:        post.PublishedAt,
		ViewCount:          post.ViewCount,
	}

	if withBody {
		v.Content = s.resolver.Resolve(post.Content, locale)
		html, err := markdown.ToHTML(v.Content)
		if err != nil {
			slog.Error("markdown render failed", "slug", post.Slug, "error", err)
			html = v.Content
		}
		v.ContentHTML = html
	}

	if post.Author != nil {
		v.Author = &AuthorView{
			Name: post.Author.DisplayName,
			URL:  post.Author.ProfileURL(s.cfg.SiteURL),
		}
	}
	for _, c := range post.Categories {
		v.Categories = append(v.Categories, CategoryView{
			Slug: c.Slug,
			Name: s.resolver.Resolve(c.Name, locale),
		})
	}
	for _, t := range post.Tags {
		tv := TagView{Slug: t.Slug, Name: s.resolver.Resolve(t.Name, locale)}
		if t.Color != nil {
			tv.Color = *t.Color
		}
		v.Tags = append(v.Tags, tv)
	}
	return v
}

func (s *Service) pageView(p *store.Page, locale, region string) *PageView {
	items := make([]PostView, len(p.Items))
	for i := range p.Items {
		items[i] = s.view(&p.Items[i], locale, false)
	}
	return &PageView{
		Items:   items,
		Locale:  locale,
		Region:  region,
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   p.Total,
	}
}

// invalidate drops cached public responses after a mutation.
func (s *Service) invalidate(ctx context.Context) {
	if s.inv != nil {
		s.inv.InvalidatePosts(ctx)
	}
}
