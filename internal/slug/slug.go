// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for posts, categories,
// and tags. Slugs are derived from the English title once at creation time
// and stay stable across later title edits.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// nonAlphanumeric matches anything that isn't a lowercase letter,
	// digit, space, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// FromTitle generates a slug from an English title. Titles that slug to
// nothing (for example an Arabic-only title, which the ASCII rules strip
// entirely) fall back to a random suffix so the slug is never empty.
func FromTitle(title string) string {
	if s := Generate(title); s != "" {
		return s
	}
	return "post-" + uuid.NewString()[:8]
}

// Unique returns base if it is free, otherwise base-2, base-3, … up to the
// first free candidate. taken reports whether a candidate is already in use;
// it is typically backed by a slug-existence query.
func Unique(base string, taken func(string) (bool, error)) (string, error) {
	inUse, err := taken(base)
	if err != nil {
		return "", fmt.Errorf("slug lookup: %w", err)
	}
	if !inUse {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		inUse, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if !inUse {
			return candidate, nil
		}
	}
}
