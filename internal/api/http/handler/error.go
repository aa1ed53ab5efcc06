package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
)

// handleError maps every service error to its stable status and
// message. Only unclassified failures are logged: they are the one kind
// not attributable to caller input.
func handleError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "email already in use"})
	case errors.Is(err, model.ErrNicknameTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "nickname already in use"})
	case errors.Is(err, model.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "wrong password"})
	case errors.Is(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	default:
		log.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
