// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo computes the deterministic on-page SEO score and the
// schema.org structured data for a post. Both are pure functions of the
// post: same input, same output, no I/O and no errors.
//
// Scoring always evaluates the English resolution of every field, whatever
// the post's own default language; stored scores depend on it staying that
// way.
package seo

import (
	"fmt"
	"unicode/utf8"

	"nilepress/internal/i18n"
	"nilepress/internal/models"
)

// Score thresholds for the individual categories.
const (
	metaTitleMin   = 30
	metaTitleMax   = 60
	metaDescMin    = 120
	metaDescMax    = 160
	contentFullLen = 1000
	contentHalfLen = 500
	arabicMinLen   = 200

	fullPoints    = 10
	partialPoints = 5
	maxScore      = 100
)

// Scorer computes SEO quality scores. The resolver is used with the "en"
// locale only.
type Scorer struct {
	resolver *i18n.Resolver
}

// NewScorer creates a Scorer using the given resolver.
func NewScorer(resolver *i18n.Resolver) *Scorer {
	return &Scorer{resolver: resolver}
}

// Score returns the 0-100 additive quality score for a post. Nine
// independently evaluated categories contribute up to 10 points each; the
// sum is clamped to 100 as a safety invariant (the natural ceiling is 90).
func (s *Scorer) Score(post *models.Post) int {
	score := 0

	// Meta title length (10 points).
	titleLen := utf8.RuneCountInString(s.resolver.Resolve(post.MetaTitle, "en"))
	if titleLen >= metaTitleMin && titleLen <= metaTitleMax {
		score += fullPoints
	} else if titleLen > 0 {
		score += partialPoints
	}

	// Meta description length (10 points).
	descLen := utf8.RuneCountInString(s.resolver.Resolve(post.MetaDescription, "en"))
	if descLen >= metaDescMin && descLen <= metaDescMax {
		score += fullPoints
	} else if descLen > 0 {
		score += partialPoints
	}

	// Content length (10 points).
	contentLen := utf8.RuneCountInString(s.resolver.Resolve(post.Content, "en"))
	if contentLen >= contentFullLen {
		score += fullPoints
	} else if contentLen >= contentHalfLen {
		score += partialPoints
	}

	// Image completeness (10 points). Partial credit needs the OG image
	// specifically; a featured image alone earns nothing.
	hasOG := post.OGImage != nil && *post.OGImage != ""
	hasFeatured := post.FeaturedImageURL != nil && *post.FeaturedImageURL != ""
	if hasOG && hasFeatured {
		score += fullPoints
	} else if hasOG {
		score += partialPoints
	}

	// Structured data present (10 points).
	if schemaSet(post) {
		score += fullPoints
	}

	// Canonical URL present (10 points).
	if post.CanonicalURL != "" {
		score += fullPoints
	}

	// Taxonomy coverage (10 points).
	if len(post.Categories) > 0 && len(post.Tags) > 0 {
		score += fullPoints
	} else if len(post.Categories) > 0 || len(post.Tags) > 0 {
		score += partialPoints
	}

	// Reading time set (10 points).
	if post.ReadingTimeMinutes > 0 {
		score += fullPoints
	}

	// Bilingual completeness (10 points). The Arabic value is read raw,
	// without the English fallback, so English-only content never counts.
	if utf8.RuneCountInString(post.Content.Get("ar")) > arabicMinLen {
		score += fullPoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// SuggestImprovements returns one human-readable message per failing
// category, in the same order the score evaluates them.
func (s *Scorer) SuggestImprovements(post *models.Post) []string {
	var out []string

	titleLen := utf8.RuneCountInString(s.resolver.Resolve(post.MetaTitle, "en"))
	if titleLen < metaTitleMin {
		out = append(out, fmt.Sprintf("Meta title is too short. Aim for %d-%d characters.", metaTitleMin, metaTitleMax))
	} else if titleLen > metaTitleMax {
		out = append(out, fmt.Sprintf("Meta title is too long. Keep it under %d characters.", metaTitleMax))
	}

	descLen := utf8.RuneCountInString(s.resolver.Resolve(post.MetaDescription, "en"))
	if descLen < metaDescMin {
		out = append(out, fmt.Sprintf("Meta description is too short. Aim for %d-%d characters.", metaDescMin, metaDescMax))
	} else if descLen > metaDescMax {
		out = append(out, fmt.Sprintf("Meta description is too long. Keep it under %d characters.", metaDescMax))
	}

	contentLen := utf8.RuneCountInString(s.resolver.Resolve(post.Content, "en"))
	if contentLen < contentFullLen {
		out = append(out, fmt.Sprintf("Content is too short. Aim for at least %d characters for better SEO.", contentFullLen))
	}

	if post.OGImage == nil || *post.OGImage == "" {
		out = append(out, "Missing OG image. Add an image for social sharing.")
	}

	if len(post.Categories) == 0 {
		out = append(out, "No categories assigned. Add relevant categories.")
	}

	if len(post.Tags) == 0 {
		out = append(out, "No tags assigned. Add relevant tags.")
	}

	if utf8.RuneCountInString(post.Content.Get("ar")) <= arabicMinLen {
		out = append(out, "Arabic content is missing or incomplete. Add Arabic translation for better reach.")
	}

	return out
}

// schemaSet reports whether the post carries non-empty structured data.
func schemaSet(post *models.Post) bool {
	return len(post.SchemaJSON) > 0 && string(post.SchemaJSON) != "null"
}
