package service

import (
	"errors"
	"time"

	"github.com/blogapi/internal/db"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

// PostsPerPage is the fixed page size for list results.
const PostsPerPage = 10

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	Title   string
	Slug    string
	Author  string
	Content string
	Status  db.PostStatus
}

// PostUpdateInput represents a partial update. Nil fields are left untouched.
type PostUpdateInput struct {
	Title   *string
	Slug    *string
	Author  *string
	Content *string
	Status  *db.PostStatus
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Page          int
	IncludeDrafts bool
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Get fetches a post by id.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create validates the input and persists a new post. Status defaults to
// draft; a post created directly as published gets its publication time
// stamped at creation.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	post := db.Post{
		Title:   input.Title,
		Slug:    input.Slug,
		Author:  input.Author,
		Content: input.Content,
		Status:  input.Status,
	}
	if post.Status == "" {
		post.Status = db.StatusDraft
	}
	stampPublication(&post, time.Now())

	if err := s.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent insert with the same slug;
			// report it the same way the ruleset would have.
			return nil, slugConflict()
		}
		return nil, err
	}

	return &post, nil
}

// Update applies the provided fields to an existing post. The read, the
// publication-stamp decision and the write run in one transaction so two
// concurrent publishes can not both stamp.
func (s *PostService) Update(id uint, input PostUpdateInput) (*db.Post, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	if err := s.validateUpdate(id, input); err != nil {
		return nil, err
	}

	var updated db.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Post
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		if input.Title != nil {
			existing.Title = *input.Title
		}
		if input.Slug != nil {
			existing.Slug = *input.Slug
		}
		if input.Author != nil {
			existing.Author = *input.Author
		}
		if input.Content != nil {
			existing.Content = *input.Content
		}
		if input.Status != nil {
			existing.Status = *input.Status
		}

		stampPublication(&existing, time.Now())

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, slugConflict()
		}
		return nil, err
	}

	return &updated, nil
}

// Delete removes a post permanently.
func (s *PostService) Delete(id uint) error {
	result := s.db.Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// List returns one page of posts ordered by creation time ascending. Drafts
// are hidden unless the filter opts in.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.listQuery(filter.IncludeDrafts).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []db.Post
	if err := s.listQuery(filter.IncludeDrafts).
		Scopes(db.CreatedAsc).
		Limit(PostsPerPage).
		Offset((page - 1) * PostsPerPage).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + PostsPerPage - 1) / PostsPerPage)

	return &PostListResult{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PerPage:    PostsPerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *PostService) listQuery(includeDrafts bool) *gorm.DB {
	query := s.db.Model(&db.Post{})
	if !includeDrafts {
		query = query.Scopes(db.HideDrafts)
	}
	return query
}

// stampPublication sets the publication time the first time a post carries
// the published status. The decision looks at the target status only: once
// set, the timestamp survives later status flips in either direction.
func stampPublication(post *db.Post, now time.Time) {
	if post.Status == db.StatusPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
}
