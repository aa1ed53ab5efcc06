package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
)

const (
	// AuthCookieName is the cookie carrying the session credential,
	// named after the Authorization header convention.
	AuthCookieName = "Authorization"
	// BearerScheme is the only accepted credential scheme.
	BearerScheme = "Bearer"

	principalKey = "principal"
)

// Authenticate converts an inbound request into an authenticated
// context or a rejection. The full user row is loaded on every request
// so a token issued before the account was deleted is rejected here.
type Authenticate struct {
	tokens model.TokenManager
	users  model.UserStore
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, users model.UserStore, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, users: users, logger: logger}
}

// Handle validates the bearer cookie, loads the principal and attaches
// it to the request context. Each failure kind gets its own stable
// status and message so callers can tell them apart.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AuthCookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "authentication token not found"})
			return
		}

		scheme, tokenString, found := strings.Cut(raw, " ")
		if !found || scheme == "" || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "authentication token not found"})
			return
		}
		if scheme != BearerScheme {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "unexpected authorization scheme"})
			return
		}

		userID, err := m.tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, model.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		user, err := m.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "user not found"})
				return
			}
			m.logger.Error("authenticate: failed to load user",
				"user_id", userID,
				"error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// Principal returns the authenticated user attached by Handle.
func Principal(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
