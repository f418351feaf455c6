package db

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus 表示文章的发布状态
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// PostStatuses returns every status the system persists. Validation and the
// seed generator both read from this list so the two can not drift apart.
func PostStatuses() []PostStatus {
	return []PostStatus{StatusPublished, StatusDraft}
}

// Valid reports whether s is one of the persisted statuses.
func (s PostStatus) Valid() bool {
	for _, known := range PostStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Post 定义了文章模型
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Author      string     `gorm:"size:100;not null" json:"author"`
	Status      PostStatus `gorm:"size:20;not null;default:draft;index:idx_posts_status_created,priority:1" json:"status"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `gorm:"index:idx_posts_status_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatedAsc orders posts by creation time, earliest first. The id tie-break
// keeps the order deterministic for rows created within the same tick.
func CreatedAsc(query *gorm.DB) *gorm.DB {
	return query.Order("created_at asc").Order("id asc")
}

// HideDrafts restricts a query to published posts.
func HideDrafts(query *gorm.DB) *gorm.DB {
	return query.Where("status = ?", StatusPublished)
}
