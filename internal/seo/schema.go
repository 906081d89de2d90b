// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"nilepress/internal/i18n"
	"nilepress/internal/models"
)

// defaultArticleSection is used when a post has no categories.
const defaultArticleSection = "Technology"

// SchemaGenerator assembles schema.org BlogPosting structured data from a
// post and its relations. Missing optional relations degrade to defaults,
// never to errors.
type SchemaGenerator struct {
	resolver *i18n.Resolver
	siteURL  string
}

// NewSchemaGenerator creates a generator. siteURL is the absolute base used
// for author profile URLs.
func NewSchemaGenerator(resolver *i18n.Resolver, siteURL string) *SchemaGenerator {
	return &SchemaGenerator{resolver: resolver, siteURL: siteURL}
}

// Generate builds the BlogPosting object for a post. It is a pure function
// of its input: calling it twice on an unchanged post yields structurally
// identical output.
//
// wordCount is the character count of the English content, not an actual
// word count. That matches the long-standing persisted values consumed by
// the frontend; correcting it would change observable data.
func (g *SchemaGenerator) Generate(post *models.Post) map[string]any {
	schema := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    g.resolver.Resolve(post.Title, "en"),
		"description": g.resolver.Resolve(post.MetaDescription, "en"),
		"author":      g.authorObject(post.Author),
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   post.CanonicalURL,
		},
		"wordCount":      utf8.RuneCountInString(g.resolver.Resolve(post.Content, "en")),
		"articleSection": g.articleSection(post.Categories),
		"keywords":       g.keywords(post.Tags),
		"dateModified":   post.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if post.OGImage != nil && *post.OGImage != "" {
		schema["image"] = *post.OGImage
	}
	if post.PublishedAt != nil {
		schema["datePublished"] = post.PublishedAt.UTC().Format(time.RFC3339)
	}

	return schema
}

// GenerateJSON returns the BlogPosting object serialized for the
// schema_json column.
func (g *SchemaGenerator) GenerateJSON(post *models.Post) json.RawMessage {
	b, err := json.Marshal(g.Generate(post))
	if err != nil {
		// Only unmarshalable types can fail here and the schema contains
		// none; keep the never-fails contract with an empty object.
		return json.RawMessage("{}")
	}
	return b
}

// authorObject builds the Person node. A missing author degrades to empty
// fields rather than an error.
func (g *SchemaGenerator) authorObject(author *models.Author) map[string]any {
	person := map[string]any{
		"@type": "Person",
		"name":  "",
		"url":   "",
	}
	if author != nil {
		person["name"] = author.DisplayName
		person["url"] = author.ProfileURL(g.siteURL)
	}
	return person
}

// articleSection returns the first category's English name, or the default
// section when the post is uncategorized.
func (g *SchemaGenerator) articleSection(categories []models.Category) string {
	if len(categories) == 0 {
		return defaultArticleSection
	}
	if name := g.resolver.Resolve(categories[0].Name, "en"); name != "" {
		return name
	}
	return defaultArticleSection
}

// keywords joins the English tag names with commas.
func (g *SchemaGenerator) keywords(tags []models.Tag) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, g.resolver.Resolve(tag.Name, "en"))
	}
	return strings.Join(names, ", ")
}
