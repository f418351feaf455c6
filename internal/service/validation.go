package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/blogapi/internal/db"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 255
	authorMinLen  = 3
	authorMaxLen  = 100
	slugMaxLen    = 100
	contentMinLen = 10
)

// slugPattern accepts lowercase or uppercase word groups separated by single
// dashes: no leading/trailing dash, no double dash, no other characters.
var slugPattern = regexp.MustCompile(`(?i)^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidationError aggregates per-field rule violations. No write happens when
// one is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func (f fieldErrors) merge(field string, messages []string) {
	if len(messages) > 0 {
		f[field] = append(f[field], messages...)
	}
}

func (f fieldErrors) asError() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// slugConflict is the validation result for a slug that lost the uniqueness
// race at the store layer. Kept identical to the application-level message so
// callers can not tell which check fired.
func slugConflict() *ValidationError {
	return &ValidationError{Fields: map[string][]string{"slug": {"has already been taken"}}}
}

func titleMessages(title string) []string {
	var messages []string
	length := utf8.RuneCountInString(title)
	if length < titleMinLen {
		messages = append(messages, fmt.Sprintf("must be at least %d characters", titleMinLen))
	}
	if length > titleMaxLen {
		messages = append(messages, fmt.Sprintf("must not be greater than %d characters", titleMaxLen))
	}
	return messages
}

func authorMessages(author string) []string {
	var messages []string
	length := utf8.RuneCountInString(author)
	if length < authorMinLen {
		messages = append(messages, fmt.Sprintf("must be at least %d characters", authorMinLen))
	}
	if length > authorMaxLen {
		messages = append(messages, fmt.Sprintf("must not be greater than %d characters", authorMaxLen))
	}
	return messages
}

func contentMessages(content string) []string {
	if utf8.RuneCountInString(content) < contentMinLen {
		return []string{fmt.Sprintf("must be at least %d characters", contentMinLen)}
	}
	return nil
}

func slugFormatMessages(slug string) []string {
	var messages []string
	if utf8.RuneCountInString(slug) > slugMaxLen {
		messages = append(messages, fmt.Sprintf("must not be greater than %d characters", slugMaxLen))
	}
	if !slugPattern.MatchString(slug) {
		messages = append(messages, "format is invalid")
	}
	return messages
}

func statusMessages(status db.PostStatus) []string {
	if status.Valid() {
		return nil
	}
	parts := make([]string, 0, len(db.PostStatuses()))
	for _, s := range db.PostStatuses() {
		parts = append(parts, string(s))
	}
	sort.Strings(parts)
	return []string{"must be one of: " + strings.Join(parts, ", ")}
}

// validateCreate checks the full-create ruleset: the four text fields are
// mandatory, status is optional.
func (s *PostService) validateCreate(input PostInput) error {
	errs := fieldErrors{}

	if input.Title == "" {
		errs.add("title", "is required")
	} else {
		errs.merge("title", titleMessages(input.Title))
	}

	if input.Slug == "" {
		errs.add("slug", "is required")
	} else {
		errs.merge("slug", slugFormatMessages(input.Slug))
		if len(errs["slug"]) == 0 {
			taken, err := s.slugTaken(input.Slug, 0)
			if err != nil {
				return err
			}
			if taken {
				errs.add("slug", "has already been taken")
			}
		}
	}

	if input.Author == "" {
		errs.add("author", "is required")
	} else {
		errs.merge("author", authorMessages(input.Author))
	}

	if input.Content == "" {
		errs.add("content", "is required")
	} else {
		errs.merge("content", contentMessages(input.Content))
	}

	if input.Status != "" {
		errs.merge("status", statusMessages(input.Status))
	}

	return errs.asError()
}

// validateUpdate checks the partial-update ruleset: only the provided fields
// are validated. The uniqueness probe excludes the post's own row so an update
// resubmitting its current slug passes.
func (s *PostService) validateUpdate(id uint, input PostUpdateInput) error {
	errs := fieldErrors{}

	if input.Title != nil {
		errs.merge("title", titleMessages(*input.Title))
	}

	if input.Slug != nil {
		errs.merge("slug", slugFormatMessages(*input.Slug))
		if len(errs["slug"]) == 0 {
			taken, err := s.slugTaken(*input.Slug, id)
			if err != nil {
				return err
			}
			if taken {
				errs.add("slug", "has already been taken")
			}
		}
	}

	if input.Author != nil {
		errs.merge("author", authorMessages(*input.Author))
	}

	if input.Content != nil {
		errs.merge("content", contentMessages(*input.Content))
	}

	if input.Status != nil {
		errs.merge("status", statusMessages(*input.Status))
	}

	return errs.asError()
}

// slugTaken reports whether another post already owns slug. excludeID is the
// row to ignore; zero means none.
func (s *PostService) slugTaken(slug string, excludeID uint) (bool, error) {
	query := s.db.Model(&db.Post{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
