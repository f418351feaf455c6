package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupScopeTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:db-scope-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&Post{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestPostStatusesCoverEnum(t *testing.T) {
	statuses := PostStatuses()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Valid() {
			t.Fatalf("status %q reported invalid", s)
		}
	}
	if PostStatus("archived").Valid() {
		t.Fatal("unknown status reported valid")
	}
}

func TestHideDraftsFiltersOutDrafts(t *testing.T) {
	gdb := setupScopeTestDB(t)

	posts := []Post{
		{Title: "published one", Slug: "published-one", Author: "Jay", Content: "published body one", Status: StatusPublished},
		{Title: "draft one", Slug: "draft-one", Author: "Jay", Content: "draft body here", Status: StatusDraft},
		{Title: "published two", Slug: "published-two", Author: "Jay", Content: "published body two", Status: StatusPublished},
	}
	for i := range posts {
		if err := gdb.Create(&posts[i]).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	var visible []Post
	if err := gdb.Scopes(HideDrafts).Find(&visible).Error; err != nil {
		t.Fatalf("failed to query posts: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(visible))
	}
	for _, p := range visible {
		if p.Status != StatusPublished {
			t.Fatalf("draft leaked into result: %q", p.Slug)
		}
	}
}

func TestCreatedAscOrdersOldestFirst(t *testing.T) {
	gdb := setupScopeTestDB(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, slug := range []string{"third", "first", "second"} {
		offsets := map[string]time.Duration{"first": 0, "second": time.Hour, "third": 2 * time.Hour}
		post := Post{
			Title:     "post " + slug,
			Slug:      slug,
			Author:    "Jay",
			Content:   "content long enough",
			CreatedAt: base.Add(offsets[slug]),
		}
		if err := gdb.Create(&post).Error; err != nil {
			t.Fatalf("failed to seed post %d: %v", i, err)
		}
	}

	var ordered []Post
	if err := gdb.Scopes(CreatedAsc).Find(&ordered).Error; err != nil {
		t.Fatalf("failed to query posts: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, slug := range want {
		if ordered[i].Slug != slug {
			t.Fatalf("position %d: expected %q, got %q", i, slug, ordered[i].Slug)
		}
	}
}

func TestCreatedAscTieBreaksOnID(t *testing.T) {
	gdb := setupScopeTestDB(t)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, slug := range []string{"tie-a", "tie-b", "tie-c"} {
		post := Post{Title: "tied " + slug, Slug: slug, Author: "Jay", Content: "content long enough", CreatedAt: at}
		if err := gdb.Create(&post).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	var ordered []Post
	if err := gdb.Scopes(CreatedAsc).Find(&ordered).Error; err != nil {
		t.Fatalf("failed to query posts: %v", err)
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].ID > ordered[i].ID {
			t.Fatalf("ids out of order at %d: %d then %d", i, ordered[i-1].ID, ordered[i].ID)
		}
	}
}

func TestSlugUniqueIndexRejectsDuplicates(t *testing.T) {
	gdb := setupScopeTestDB(t)

	first := Post{Title: "first", Slug: "same-slug", Author: "Jay", Content: "content long enough"}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("failed to create first post: %v", err)
	}

	second := Post{Title: "second", Slug: "same-slug", Author: "Jay", Content: "content long enough"}
	err := gdb.Create(&second).Error
	if err == nil {
		t.Fatal("expected duplicate slug insert to fail")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicated key error, got %v", err)
	}
}
