package main

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/blogapi/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Post{}); err != nil {
		t.Fatalf("failed to migrate posts: %v", err)
	}
	return gdb
}

func TestSeedTestPostsCreatesValidPosts(t *testing.T) {
	gdb := setupSeedTestDB(t)

	created, err := seedTestPosts(gdb, 20)
	if err != nil {
		t.Fatalf("seed posts: %v", err)
	}
	if created != 20 {
		t.Fatalf("expected 20 posts created, got %d", created)
	}

	slugPattern := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	var posts []db.Post
	if err := gdb.Find(&posts).Error; err != nil {
		t.Fatalf("load posts: %v", err)
	}
	for _, p := range posts {
		if !slugPattern.MatchString(p.Slug) {
			t.Fatalf("seeded slug %q does not match the slug rules", p.Slug)
		}
		if !p.Status.Valid() {
			t.Fatalf("seeded status %q is not a known status", p.Status)
		}
		if p.Status == db.StatusPublished && p.PublishedAt == nil {
			t.Fatalf("published seed post %q missing published_at", p.Slug)
		}
		if p.Status == db.StatusDraft && p.PublishedAt != nil {
			t.Fatalf("draft seed post %q should not carry published_at", p.Slug)
		}
	}
}

func TestSeedTestPostsSkipsWhenDataExists(t *testing.T) {
	gdb := setupSeedTestDB(t)

	existing := db.Post{Title: "existing", Slug: "existing", Author: "Jay", Content: "content long enough"}
	if err := gdb.Create(&existing).Error; err != nil {
		t.Fatalf("seed existing post: %v", err)
	}

	created, err := seedTestPosts(gdb, 20)
	if err != nil {
		t.Fatalf("seed posts: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected skip, got %d created", created)
	}

	var count int64
	if err := gdb.Model(&db.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 post, got %d", count)
	}
}
