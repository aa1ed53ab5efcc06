package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/api/http/middleware"
	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
	"github.com/hanulsoft/board-server/internal/service"
)

const maxAvatarSize = 8 << 20

// User handles account listing, profile reads and mutations.
type User struct {
	service *service.User
	logger  *logger.Logger
}

// NewUser creates a new User handler instance.
func NewUser(service *service.User, logger *logger.Logger) *User {
	return &User{service: service, logger: logger}
}

type userResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	Role      model.Role `json:"role"`
	IsOpen    bool       `json:"isOpen"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Role:      u.Role,
		IsOpen:    u.IsOpen,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type updateUserRequest struct {
	Password *string `json:"password"`
	Nickname *string `json:"nickname"`
	IsOpen   *bool   `json:"isOpen"`
	Image    *string `json:"image"`
}

type recoveryRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// List returns every active account. The route is admin-only.
func (h *User) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	results := make([]userResponse, 0, len(users))
	for _, u := range users {
		results = append(results, toUserResponse(u))
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Me returns the authenticated caller's own profile.
func (h *User) Me(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(principal))
}

// Update applies a partial profile update. On success the session
// cookie is cleared so the caller re-authenticates against the new
// credentials.
func (h *User) Update(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal.ID, model.UpdateProfileParams{
		Password: req.Password,
		Nickname: req.Nickname,
		IsOpen:   req.IsOpen,
		Image:    req.Image,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	clearSessionCookie(c)
	c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete soft-deletes the caller's own account and ends the session.
func (h *User) Delete(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal.ID); err != nil {
		handleError(c, h.logger, err)
		return
	}

	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// UploadAvatar stores the raw request body as the caller's avatar.
func (h *User) UploadAvatar(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	size := c.Request.ContentLength
	if size <= 0 || size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid avatar size"})
		return
	}

	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	updated, err := h.service.UploadAvatar(c.Request.Context(), principal.ID, c.Request.Body, size, contentType)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": updated.Image})
}

// DownloadAvatar streams the caller's avatar back.
func (h *User) DownloadAvatar(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	reader, err := h.service.DownloadAvatar(c.Request.Context(), principal.ID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	defer reader.Close()

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("failed to stream avatar", "user_id", principal.ID, "error", err.Error())
	}
}

// RequestRecovery forwards an account-recovery request to the operator.
// It is unauthenticated: a soft-deleted account cannot log in, so
// identity comes from the body.
func (h *User) RequestRecovery(c *gin.Context) {
	var req recoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	err := h.service.RequestRecovery(c.Request.Context(), req.Email, req.Nickname, req.Title, req.Content)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "recovery request sent"})
}
