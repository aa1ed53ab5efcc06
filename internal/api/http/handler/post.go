package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/api/http/middleware"
	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
	"github.com/hanulsoft/board-server/internal/service"
)

// Post handles the board CRUD surface.
type Post struct {
	service *service.Post
	logger  *logger.Logger
}

// NewPost creates a new Post handler instance.
func NewPost(service *service.Post, logger *logger.Logger) *Post {
	return &Post{service: service, logger: logger}
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	OwnerID   int64     `json:"ownerId"`
	IsOpen    bool      `json:"isOpen"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		OwnerID:   p.OwnerID,
		IsOpen:    p.IsOpen,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type createPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	IsOpen   *bool   `json:"isOpen"`
}

type postRecoveryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return 0, false
	}
	return id, true
}

// List returns every active post.
func (h *Post) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	results := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		results = append(results, toPostResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Get returns one post by id.
func (h *Post) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Create publishes a new post owned by the caller.
func (h *Post) Create(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	saved, err := h.service.Create(c.Request.Context(), principal, model.CreatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(saved))
}

// Update applies a partial update to a post the caller owns, or any
// post when the caller is an admin.
func (h *Post) Update(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal, id, model.UpdatePostParams{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		IsOpen:   req.IsOpen,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(updated))
}

// Delete soft-deletes a post under the same owner-or-admin rule.
func (h *Post) Delete(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal, id); err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// RequestRecovery forwards a post-recovery request to the operator.
func (h *Post) RequestRecovery(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	var req postRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	err := h.service.RequestRecovery(c.Request.Context(), principal, id, req.Title, req.Content)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "recovery request sent"})
}
