package handler

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newshub/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Articles *ArticleHandler
	Feed     *FeedHandler
	Stats    *StatsHandler
	Upload   *UploadHandler
	Health   *HealthHandler
}

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	// AllowedOrigins for CORS; "*" allows any origin. Empty means "*".
	AllowedOrigins []string
	// RateLimiter guards /api when non-nil.
	RateLimiter *middleware.RateLimiter
	// AccessLog enables gin's request logger.
	AccessLog bool
}

func corsHandler(origins []string) (gin.HandlerFunc, error) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors config: %w", err)
	}
	return cors.New(cfg), nil
}

// NewRouter builds the gin engine with every NewsHub route.
func NewRouter(h Handlers, opts RouterOptions) (*gin.Engine, error) {
	corsMW, err := corsHandler(opts.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	if opts.AccessLog {
		router.Use(gin.Logger())
	}
	router.Use(corsMW)

	// Health and metrics endpoints
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)
	router.GET("/live", h.Health.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware())
	}
	{
		articles := api.Group("/articles")
		{
			articles.GET("", h.Articles.List)
			articles.GET("/published", h.Articles.ListPublished)
			articles.POST("/cleanup", h.Articles.Cleanup)
			articles.GET("/:id", h.Articles.Get)
			articles.POST("", h.Articles.Create)
			articles.PUT("/:id", h.Articles.Update)
			articles.DELETE("/:id", h.Articles.Delete)
		}

		api.GET("/rss", h.Feed.Inline)
		api.GET("/rss.xml", h.Feed.Download)
		api.GET("/rss/preview", h.Feed.Preview)

		api.GET("/stats", h.Stats.Stats)
		api.POST("/upload-image", h.Upload.Upload)
	}

	return router, nil
}
