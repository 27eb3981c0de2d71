package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brand-site-api/internal/meta"
	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PublicHandler serves the unauthenticated page payloads. Every response
// carries the generated metadata alongside the page data so the rendering
// layer never assembles SEO tags itself.
type PublicHandler struct {
	content service.ContentService
	site    meta.Site
	log     zerolog.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(content service.ContentService, site meta.Site, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		content: content,
		site:    site,
		log:     log.With().Str("handler", "public").Logger(),
	}
}

// Home handles GET /
func (h *PublicHandler) Home(c *gin.Context) {
	page, err := h.content.HomePage(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic(h.site.Name, h.site.Description, "/"),
		"data": page,
	})
}

// About handles GET /about
func (h *PublicHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic("About", "", "/about"),
	})
}

// Contact handles GET /contact
func (h *PublicHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic("Contact", "", "/contact"),
	})
}

// Book handles GET /book
func (h *PublicHandler) Book(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic("Book", "", "/book"),
	})
}

// StaticPage returns a handler for a fixed legal/policy page
func (h *PublicHandler) StaticPage(title, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"meta": h.site.ForStatic(title, "", path),
		})
	}
}

// Podcast handles GET /podcast
func (h *PublicHandler) Podcast(c *gin.Context) {
	ctx := c.Request.Context()

	episodes, err := h.content.ListEpisodes(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	seasons, err := h.content.Seasons(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic("Podcast", "", "/podcast"),
		"data": gin.H{
			"episodes": episodes,
			"seasons":  seasons,
		},
	})
}

// PodcastSeason handles GET /podcast/season/:season
func (h *PublicHandler) PodcastSeason(c *gin.Context) {
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil || season <= 0 {
		h.NotFound(c)
		return
	}

	episodes, err := h.content.SeasonEpisodes(c.Request.Context(), season)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if len(episodes) == 0 {
		h.NotFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic("Podcast Season "+strconv.Itoa(season), "", "/podcast/season/"+strconv.Itoa(season)),
		"data": gin.H{"season": season, "episodes": episodes},
	})
}

// News handles GET /news
func (h *PublicHandler) News(c *gin.Context) {
	ctx := c.Request.Context()

	articles, err := h.content.ListArticles(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	categories, err := h.content.ListCategories(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForStatic("News", "", "/news"),
		"data": gin.H{
			"articles":   articles,
			"categories": categories,
		},
	})
}

// Category handles GET /category/:slug
func (h *PublicHandler) Category(c *gin.Context) {
	page, err := h.content.CategoryPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": h.site.ForCategory(page.Category),
		"data": page,
	})
}

// ResolveSlug handles GET /:slug, the unified article/episode route
func (h *PublicHandler) ResolveSlug(c *gin.Context) {
	ref, err := h.content.Resolve(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(c)
			return
		}
		respondError(c, h.log, err)
		return
	}

	var pageMeta meta.PageMeta
	switch ref.Kind {
	case models.ContentKindEpisode:
		pageMeta = h.site.ForEpisode(ref.Episode)
	case models.ContentKindArticle:
		pageMeta = h.site.ForArticle(ref.Article)
	}

	c.JSON(http.StatusOK, gin.H{
		"meta": pageMeta,
		"data": ref,
	})
}

// NotFound is the fixed not-found payload. Missing content is a page, not
// an error.
func (h *PublicHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"meta":  h.site.NotFound(),
		"error": "not found",
	})
}
