package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanulsoft/board-server/internal/api/http/handler"
	"github.com/hanulsoft/board-server/internal/api/http/middleware"
	"github.com/hanulsoft/board-server/internal/logger"
	"github.com/hanulsoft/board-server/internal/model"
	"github.com/hanulsoft/board-server/internal/service"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	auth   *service.Auth
	users  *service.User
	posts  *service.Post
	store  model.UserStore
	tokens model.TokenManager
	logger *logger.Logger
}

// New creates a new Router instance.
func New(
	auth *service.Auth,
	users *service.User,
	posts *service.Post,
	store model.UserStore,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:   auth,
		users:  users,
		posts:  posts,
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// Engine builds the route table.
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.NewLogging(r.logger).Handle())

	authenticate := middleware.NewAuthenticate(r.tokens, r.store, r.logger).Handle()
	authorize := middleware.NewAuthorize(r.store, r.logger)

	authHandler := handler.NewAuth(r.auth, r.logger)
	userHandler := handler.NewUser(r.users, r.logger)
	postHandler := handler.NewPost(r.posts, r.logger)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := engine.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	users := engine.Group("/users")
	{
		// Recovery stays open: a soft-deleted account cannot log in.
		users.POST("/recovery", userHandler.RequestRecovery)

		authed := users.Group("", authenticate)
		{
			authed.GET("", authorize.RequireRole(model.RoleAdmin), userHandler.List)
			authed.GET("/me", userHandler.Me)
			authed.PATCH("", userHandler.Update)
			authed.DELETE("", userHandler.Delete)
			authed.PUT("/avatar", userHandler.UploadAvatar)
			authed.GET("/avatar", userHandler.DownloadAvatar)
		}
	}

	posts := engine.Group("/posts", authenticate)
	{
		posts.GET("", postHandler.List)
		posts.GET("/:id", postHandler.Get)
		posts.POST("", postHandler.Create)
		posts.PATCH("/:id", postHandler.Update)
		posts.DELETE("/:id", postHandler.Delete)
		posts.POST("/:id/recovery", postHandler.RequestRecovery)
	}

	return engine
}
