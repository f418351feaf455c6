package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/blogapi/internal/config"
	"github.com/blogapi/internal/db"
	"gorm.io/gorm"
)

// 测试数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		fmt.Println("数据库初始化失败:", err)
		return
	}

	fmt.Println("开始生成测试数据...")

	created, err := seedTestPosts(db.DB, 100)
	if err != nil {
		fmt.Println("生成测试文章失败:", err)
		return
	}

	fmt.Println("测试数据生成完成！")
	fmt.Printf("文章: %d篇测试文章\n", created)
}

var (
	titleWords = []string{
		"Notes", "Thoughts", "Lessons", "Patterns", "Pitfalls",
		"Migrations", "Pagination", "Indexes", "Drafts", "Releases",
	}
	topicWords = []string{
		"Go", "SQLite", "Gin", "GORM", "REST",
		"Testing", "Logging", "Markdown", "Slugs", "Timestamps",
	}
	firstNames = []string{"John", "Jane", "Wei", "Akira", "Maria", "Tomás"}
	lastNames  = []string{"Doe", "Smith", "Chen", "Tanaka", "García", "Silva"}
)

// seedTestPosts fills an empty posts table with amount randomized posts. It
// is a no-op when posts already exist.
func seedTestPosts(gdb *gorm.DB, amount int) (int, error) {
	var count int64
	if err := gdb.Model(&db.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		fmt.Println("文章已存在，跳过创建")
		return 0, nil
	}

	statuses := db.PostStatuses()

	for i := 0; i < amount; i++ {
		title := fmt.Sprintf("%s on %s #%d",
			titleWords[rand.Intn(len(titleWords))],
			topicWords[rand.Intn(len(topicWords))],
			i+1,
		)
		author := fmt.Sprintf("%s %s",
			firstNames[rand.Intn(len(firstNames))],
			lastNames[rand.Intn(len(lastNames))],
		)
		content := fmt.Sprintf("# %s\n\nGenerated body for %s, long enough to satisfy the content rules. Written by %s.",
			title, title, author)

		post := db.Post{
			Title:   title,
			Slug:    slugify(title),
			Author:  author,
			Content: content,
			Status:  statuses[rand.Intn(len(statuses))],
		}
		if post.Status == db.StatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}

		if err := gdb.Create(&post).Error; err != nil {
			return i, err
		}
	}

	return amount, nil
}

// slugify lowercases a title and collapses everything outside [a-z0-9] into
// single dashes.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
