package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blogapi/internal/db"
	"github.com/blogapi/internal/service"
	"github.com/gin-gonic/gin"
)

type createPostRequest struct {
	Title   string        `json:"title"`
	Slug    string        `json:"slug"`
	Author  string        `json:"author"`
	Content string        `json:"content"`
	Status  db.PostStatus `json:"status"`
}

type updatePostRequest struct {
	Title   *string        `json:"title"`
	Slug    *string        `json:"slug"`
	Author  *string        `json:"author"`
	Content *string        `json:"content"`
	Status  *db.PostStatus `json:"status"`
}

// postID resolves the :id route parameter. A non-numeric id is treated the
// same as a missing post.
func postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors to their HTTP shape.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// ListPosts returns one page of posts. Drafts are hidden unless the request
// passes the literal drafts=true.
func (a *API) ListPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	filter := service.PostFilter{
		Page:          page,
		IncludeDrafts: c.Query("drafts") == "true",
	}

	list, err := a.posts.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":         list.Posts,
		"total":        list.Total,
		"current_page": list.Page,
		"per_page":     list.PerPage,
		"last_page":    list.TotalPages,
	})
}

// GetPost returns a single post by id.
func (a *API) GetPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPostHTML returns the post content rendered to sanitized HTML.
func (a *API) GetPostHTML(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	html, err := service.RenderContent(post.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": post.ID, "html": html})
}

// CreatePost validates the request body and stores a new post.
func (a *API) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Author:  req.Author,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost applies a partial update and returns the refreshed post.
func (a *API) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := a.posts.Update(id, service.PostUpdateInput{
		Title:   req.Title,
		Slug:    req.Slug,
		Author:  req.Author,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post permanently.
func (a *API) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
