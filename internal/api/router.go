package api

import (
	"net/http"
	"time"

	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/meta"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	site := meta.Site{
		Name:        cfg.Site.Name,
		Origin:      cfg.Site.Origin,
		Description: cfg.Site.Description,
		TwitterUser: cfg.Site.TwitterUser,
	}

	// Handlers
	publicHandler := NewPublicHandler(services.Content, site, log)
	seoHandler := NewSEOHandler(services.Content, site, log)
	authHandler := NewAuthHandler(services.Auth, &cfg.Auth, log)
	adminHandler := NewAdminHandler(services.Admin, log)
	uploadHandler := NewUploadHandler(&cfg.Upload, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public pages. Static routes win over the catch-all, so reserved path
	// segments never reach the slug resolver.
	router.GET("/", publicHandler.Home)
	router.GET("/about", publicHandler.About)
	router.GET("/podcast", publicHandler.Podcast)
	router.GET("/podcast/season/:season", publicHandler.PodcastSeason)
	router.GET("/news", publicHandler.News)
	router.GET("/category/:slug", publicHandler.Category)
	router.GET("/contact", publicHandler.Contact)
	router.GET("/book", publicHandler.Book)
	router.GET("/privacy", publicHandler.StaticPage("Privacy Policy", "/privacy"))
	router.GET("/dmca", publicHandler.StaticPage("DMCA Policy", "/dmca"))
	router.GET("/acceptable-use", publicHandler.StaticPage("Acceptable Use Policy", "/acceptable-use"))
	router.GET("/user-agreement", publicHandler.StaticPage("User Agreement", "/user-agreement"))

	// Crawler surface
	router.GET("/sitemap.xml", seoHandler.Sitemap)
	router.GET("/robots.txt", seoHandler.Robots)

	// Stored uploads
	router.Static("/uploads", cfg.Upload.Dir)

	// Unified article/episode catch-all
	router.GET("/:slug", publicHandler.ResolveSlug)
	router.NoRoute(publicHandler.NotFound)

	// Admin surface: everything behind the session guard except login
	admin := router.Group("/admin")
	{
		admin.GET("/login", authHandler.LoginPage)
		admin.POST("/login", authHandler.Login)

		guarded := admin.Group("")
		guarded.Use(authHandler.RequireSession())
		{
			guarded.GET("", adminHandler.Dashboard)
			guarded.POST("/logout", authHandler.Logout)

			guarded.GET("/news", adminHandler.ListArticles)
			guarded.POST("/news", adminHandler.CreateArticle)
			guarded.GET("/news/:id", adminHandler.GetArticle)
			guarded.PUT("/news/:id", adminHandler.UpdateArticle)
			guarded.DELETE("/news/:id", adminHandler.DeleteArticle)

			guarded.GET("/podcasts", adminHandler.ListEpisodes)
			guarded.POST("/podcasts", adminHandler.CreateEpisode)
			guarded.GET("/podcasts/:id", adminHandler.GetEpisode)
			guarded.PUT("/podcasts/:id", adminHandler.UpdateEpisode)
			guarded.DELETE("/podcasts/:id", adminHandler.DeleteEpisode)

			guarded.GET("/seasons", adminHandler.Seasons)

			guarded.GET("/settings", adminHandler.GetSettings)
			guarded.GET("/settings/:key", adminHandler.GetSetting)
			guarded.PUT("/settings", adminHandler.PutSetting)

			guarded.POST("/uploads", uploadHandler.Upload)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "brand-site-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
