// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package policy defines the publication rules for content visibility:
// what counts as "live" and which regions a request may see. The predicates
// are pure, and each has a matching SQL fragment builder so the same rule
// pushes down into repository queries instead of filtering in memory.
package policy

import (
	"encoding/json"
	"fmt"
	"time"

	"nilepress/internal/models"
)

// Policy evaluates publication and region visibility rules. The recognized
// region table is injected at construction; there is no ambient global.
type Policy struct {
	regions []string
}

// New creates a Policy over the given region table.
func New(regions []string) *Policy {
	cp := make([]string, len(regions))
	copy(cp, regions)
	return &Policy{regions: cp}
}

// KnownRegion reports whether the region code is part of the table.
func (p *Policy) KnownRegion(region string) bool {
	for _, r := range p.regions {
		if r == region {
			return true
		}
	}
	return false
}

// IsLive reports whether a post is publicly visible at the given instant:
// published status, a publish timestamp, and that timestamp in the past.
func (p *Policy) IsLive(post *models.Post, now time.Time) bool {
	return post.Status == models.PostStatusPublished &&
		post.PublishedAt != nil &&
		!post.PublishedAt.After(now)
}

// MatchesRegion reports whether a post is visible to a requested region.
// This is set membership, not equality: a GLOBAL-tagged post matches every
// request, and requesting GLOBAL (or nothing) means no region restriction.
func (p *Policy) MatchesRegion(post *models.Post, requested string) bool {
	if requested == "" || requested == models.RegionGlobal {
		return true
	}
	return post.Regions.Contains(requested) || post.Regions.Contains(models.RegionGlobal)
}

// LiveCondition returns a parameterized SQL fragment equivalent to IsLive,
// with placeholders starting at argIdx. The fragment is parenthesized so it
// composes with other conditions by AND without precedence surprises.
func LiveCondition(argIdx int, now time.Time) (string, []any) {
	cond := fmt.Sprintf(
		"(status = $%d AND published_at IS NOT NULL AND published_at <= $%d)",
		argIdx, argIdx+1,
	)
	return cond, []any{models.PostStatusPublished, now}
}

// RegionCondition returns a parameterized SQL fragment equivalent to
// MatchesRegion. Requesting GLOBAL yields no condition at all. The OR over
// the two containment checks is parenthesized: it must always AND with the
// live condition, each evaluated independently.
func RegionCondition(argIdx int, requested string) (string, []any) {
	if requested == "" || requested == models.RegionGlobal {
		return "", nil
	}
	cond := fmt.Sprintf("(regions @> $%d OR regions @> $%d)", argIdx, argIdx+1)
	return cond, []any{regionJSON(requested), regionJSON(models.RegionGlobal)}
}

// regionJSON encodes a single region as a JSONB array literal for the
// @> containment operator.
func regionJSON(region string) []byte {
	b, _ := json.Marshal([]string{region})
	return b
}
