package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"publishing-backend/internal/shared/middleware"
	"publishing-backend/internal/shared/response"
	"publishing-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupTaxonomyRoutes(v1, c)
		setupArticleRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
		auth.POST("/logout", middleware.Auth(c.JWTManager, c.Cache), c.UserHandler.Logout)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.Auth(c.JWTManager, c.Cache))
	{
		users.GET("/me", c.UserHandler.Me)
		users.PUT("/me", c.UserHandler.UpdateProfile)
	}
}

func setupTaxonomyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.TaxonomyHandler.ListCategories)
	v1.GET("/tags", c.TaxonomyHandler.ListTags)
}

// setupArticleRoutes wires reads with optional auth, so the visibility
// policy can widen results for callers that do present a token.
func setupArticleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	articles := v1.Group("/articles")
	{
		articles.GET("", middleware.OptionalAuth(c.JWTManager, c.Cache), c.ArticleHandler.List)
		// The :id segment carries the slug on reads.
		articles.GET("/:id", middleware.OptionalAuth(c.JWTManager, c.Cache), c.ArticleHandler.GetBySlug)
		articles.GET("/:id/comments", middleware.OptionalAuth(c.JWTManager, c.Cache), c.CommentHandler.ListByArticle)

		authed := articles.Group("")
		authed.Use(middleware.Auth(c.JWTManager, c.Cache))
		{
			authed.POST("", c.ArticleHandler.Create)
			authed.PUT("/:id", c.ArticleHandler.Update)
			authed.DELETE("/:id", c.ArticleHandler.SoftDelete)
			authed.POST("/:id/comments", c.CommentHandler.Create)

			privileged := authed.Group("")
			privileged.Use(middleware.RequirePrivileged())
			{
				privileged.PUT("/:id/restore", c.ArticleHandler.Restore)
				privileged.DELETE("/:id/hard", c.ArticleHandler.HardDelete)
			}
		}
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	comments.Use(middleware.Auth(c.JWTManager, c.Cache))
	{
		comments.PUT("/:id", c.CommentHandler.Update)
		comments.DELETE("/:id", c.CommentHandler.Redact)
		comments.DELETE("/:id/permanent", middleware.RequirePrivileged(), c.CommentHandler.HardDelete)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(c.JWTManager, c.Cache), middleware.RequirePrivileged())
	{
		admin.PUT("/users/:id/roles", c.UserHandler.UpdateRoles)

		admin.POST("/categories", c.TaxonomyHandler.CreateCategory)
		admin.DELETE("/categories/:id", c.TaxonomyHandler.DeleteCategory)
		admin.POST("/tags", c.TaxonomyHandler.CreateTag)
		admin.DELETE("/tags/:id", c.TaxonomyHandler.DeleteTag)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			response.Success(ctx, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "up"

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = "down"
		} else {
			status["cache"] = "up"
		}

		response.Success(ctx, http.StatusOK, status)
	}
}
