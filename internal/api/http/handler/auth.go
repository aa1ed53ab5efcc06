package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/api/http/middleware"
	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
	"github.com/hanulsoft/board-server/internal/service"
)

// Auth handles registration, login and logout.
type Auth struct {
	service *service.Auth
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(service *service.Auth, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
	Image    string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	saved, err := h.service.Register(c.Request.Context(), model.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
		Image:    req.Image,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account created", "id": saved.ID})
}

// Login verifies credentials and sets the session cookie.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	_, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		handleError(c, h.logger, err)
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

// Logout clears the session cookie. Tokens have no server-side
// revocation list; the client discarding the cookie is the
// invalidation.
func (h *Auth) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func setSessionCookie(c *gin.Context, token string) {
	maxAge := int((12 * time.Hour).Seconds())
	c.SetCookie(middleware.AuthCookieName, middleware.BearerScheme+" "+token, maxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
}
