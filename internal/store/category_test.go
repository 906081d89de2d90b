package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"nilepress/internal/i18n"
	"nilepress/internal/models"
)

func TestCategoryStoreReparentCycleGuard(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	slugs := []string{"test-cyc-a-" + suffix, "test-cyc-b-" + suffix, "test-cyc-c-" + suffix}
	t.Cleanup(func() { cleanCategories(t, db, slugs...) })

	// Build a chain a -> b -> c.
	a, err := s.Create(ctx, &models.Category{
		Slug: slugs[0],
		Name: i18n.Localized(map[string]string{"en": "A"}),
	})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := s.Create(ctx, &models.Category{
		Slug:     slugs[1],
		ParentID: &a.ID,
		Name:     i18n.Localized(map[string]string{"en": "B"}),
	})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	c, err := s.Create(ctx, &models.Category{
		Slug:     slugs[2],
		ParentID: &b.ID,
		Name:     i18n.Localized(map[string]string{"en": "C"}),
	})
	if err != nil {
		t.Fatalf("create c: %v", err)
	}

	tests := []struct {
		name      string
		id        uuid.UUID
		newParent *uuid.UUID
		wantErr   error
	}{
		{"self parent", a.ID, &a.ID, ErrCategoryCycle},
		{"direct child", a.ID, &b.ID, ErrCategoryCycle},
		{"grandchild", a.ID, &c.ID, ErrCategoryCycle},
		{"detach to root", b.ID, nil, nil},
		{"valid move", c.ID, &a.ID, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Reparent(ctx, tt.id, tt.newParent); err != tt.wantErr {
				t.Errorf("Reparent: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryStoreListCountsVisiblePosts(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	catSlug := "test-count-" + uuid.NewString()[:8]
	postSlug := "test-count-post-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanPosts(t, db, postSlug)
		cleanCategories(t, db, catSlug)
	})

	cat, err := s.Create(ctx, &models.Category{
		Slug: catSlug,
		Name: i18n.Localized(map[string]string{"en": "Counted"}),
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	created, err := posts.Create(ctx, &models.Post{
		AuthorID:   testAuthorID(t, db),
		Slug:       postSlug,
		Title:      i18n.Localized(map[string]string{"en": "Counted Post"}),
		Content:    i18n.Localized(map[string]string{"en": "body"}),
		Status:     models.PostStatusDraft,
		Categories: []models.Category{*cat},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	count := func() int {
		t.Helper()
		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		for _, c := range list {
			if c.Slug == catSlug {
				return c.PostCount
			}
		}
		t.Fatalf("category %s not in list", catSlug)
		return 0
	}

	if got := count(); got != 1 {
		t.Errorf("post count: got %d, want 1", got)
	}

	// Soft-deleted posts drop out of the count.
	if err := posts.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	if got := count(); got != 0 {
		t.Errorf("post count after soft delete: got %d, want 0", got)
	}
}
