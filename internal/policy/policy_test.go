package policy

import (
	"strings"
	"testing"
	"time"

	"nilepress/internal/models"
)

var regionTable = []string{"EG", "US", "GLOBAL"}

func timePtr(t time.Time) *time.Time { return &t }

// TestIsLive covers the three-way conjunction defining public visibility.
func TestIsLive(t *testing.T) {
	p := New(regionTable)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{
			name: "published in the past",
			post: models.Post{Status: models.PostStatusPublished, PublishedAt: timePtr(now.Add(-time.Hour))},
			want: true,
		},
		{
			name: "published exactly now",
			post: models.Post{Status: models.PostStatusPublished, PublishedAt: timePtr(now)},
			want: true,
		},
		{
			name: "published in the future",
			post: models.Post{Status: models.PostStatusPublished, PublishedAt: timePtr(now.Add(time.Hour))},
			want: false,
		},
		{
			name: "published status without timestamp",
			post: models.Post{Status: models.PostStatusPublished},
			want: false,
		},
		{
			name: "draft with past timestamp",
			post: models.Post{Status: models.PostStatusDraft, PublishedAt: timePtr(now.Add(-time.Hour))},
			want: false,
		},
		{
			name: "scheduled",
			post: models.Post{Status: models.PostStatusScheduled, ScheduledAt: timePtr(now.Add(time.Hour))},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsLive(&tt.post, now); got != tt.want {
				t.Errorf("IsLive() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestMatchesRegion verifies set-membership semantics: GLOBAL-tagged posts
// match everything, and a GLOBAL request means no restriction.
func TestMatchesRegion(t *testing.T) {
	p := New(regionTable)

	tests := []struct {
		name      string
		regions   models.Regions
		requested string
		want      bool
	}{
		{"global post matches EG request", models.Regions{"GLOBAL"}, "EG", true},
		{"global post matches US request", models.Regions{"GLOBAL"}, "US", true},
		{"EG post matches EG request", models.Regions{"EG"}, "EG", true},
		{"EG post does not match US request", models.Regions{"EG"}, "US", false},
		{"EG+GLOBAL post matches US request", models.Regions{"EG", "GLOBAL"}, "US", true},
		{"global request matches EG-only post", models.Regions{"EG"}, "GLOBAL", true},
		{"empty request means no restriction", models.Regions{"EG"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := models.Post{Regions: tt.regions}
			if got := p.MatchesRegion(&post, tt.requested); got != tt.want {
				t.Errorf("MatchesRegion(%v, %q) = %v, want %v", tt.regions, tt.requested, got, tt.want)
			}
		})
	}
}

func TestKnownRegion(t *testing.T) {
	p := New(regionTable)
	if !p.KnownRegion("EG") {
		t.Error("EG should be known")
	}
	if p.KnownRegion("FR") {
		t.Error("FR should not be known")
	}
}

// TestLiveCondition checks placeholder numbering and argument order so the
// fragment composes correctly at any position in a WHERE clause.
func TestLiveCondition(t *testing.T) {
	now := time.Now()
	cond, args := LiveCondition(3, now)

	if !strings.Contains(cond, "$3") || !strings.Contains(cond, "$4") {
		t.Errorf("expected placeholders $3 and $4, got %q", cond)
	}
	if !strings.HasPrefix(cond, "(") || !strings.HasSuffix(cond, ")") {
		t.Errorf("live condition must be parenthesized: %q", cond)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[0] != models.PostStatusPublished {
		t.Errorf("first arg: got %v, want published status", args[0])
	}
}

// TestRegionCondition checks the containment OR is parenthesized (so it ANDs
// with the live condition) and that GLOBAL requests produce no condition.
func TestRegionCondition(t *testing.T) {
	cond, args := RegionCondition(1, "EG")
	if !strings.HasPrefix(cond, "(") || !strings.HasSuffix(cond, ")") {
		t.Errorf("region condition must be parenthesized: %q", cond)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if string(args[0].([]byte)) != `["EG"]` {
		t.Errorf("first arg: got %s", args[0])
	}
	if string(args[1].([]byte)) != `["GLOBAL"]` {
		t.Errorf("second arg: got %s", args[1])
	}

	cond, args = RegionCondition(1, "GLOBAL")
	if cond != "" || args != nil {
		t.Errorf("GLOBAL request should yield no condition, got %q %v", cond, args)
	}

	cond, args = RegionCondition(1, "")
	if cond != "" || args != nil {
		t.Errorf("empty request should yield no condition, got %q %v", cond, args)
	}
}
