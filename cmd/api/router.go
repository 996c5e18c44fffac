package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/shared/middleware"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		c.RateLimiter.Handler(),
	)

	r.GET("/health", healthHandler(c))

	v1 := r.Group("/api/v1")
	requireAuth := middleware.AuthMiddleware(c.Tokens)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)

		me := auth.Group("")
		me.Use(requireAuth)
		me.GET("/me", c.UserHandler.Me)
		me.PUT("/me", c.UserHandler.UpdateMe)
		me.DELETE("/me", c.UserHandler.DeleteMe)
		me.POST("/logout", c.UserHandler.Logout)
	}

	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/search", c.AuthorHandler.Search)
		authors.GET("/:id", c.AuthorHandler.GetByID)

		authors.POST("", requireAuth, c.AuthorHandler.Create)
		authors.PUT("/:id", requireAuth, c.AuthorHandler.Update)
		authors.DELETE("/:id", requireAuth, c.AuthorHandler.Delete)
	}

	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetByID)

		books.POST("", requireAuth, c.BookHandler.Create)
		books.PUT("/:id", requireAuth, c.BookHandler.Update)
		books.DELETE("/:id", requireAuth, c.BookHandler.Delete)
		books.POST("/import", requireAuth, c.ImportHandler.Import)
	}

	return r
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := database.HealthCheck(ctx.Request.Context(), c.DB); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database is unreachable")
			return
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":   "ok",
			"database": "ok",
			"cache":    cacheStatus,
		})
	}
}
