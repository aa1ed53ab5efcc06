package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
)

// Authorize guards routes that require a specific role. It must run
// after Authenticate.
type Authorize struct {
	users  model.UserStore
	logger *logger.Logger
}

// NewAuthorize creates a new Authorize middleware instance.
func NewAuthorize(users model.UserStore, logger *logger.Logger) *Authorize {
	return &Authorize{users: users, logger: logger}
}

// RequireRole permits continuation only when the principal holds the
// required role. The role is re-read from the store on every request
// instead of trusting the row loaded at authentication time, so a role
// change takes effect on the very next request.
func (m *Authorize) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
			return
		}

		got, err := m.users.GetRole(c.Request.Context(), principal.ID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "user not found"})
				return
			}
			m.logger.Error("authorize: failed to load role",
				"user_id", principal.ID,
				"error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}

		if got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin permission required"})
			return
		}

		c.Next()
	}
}
