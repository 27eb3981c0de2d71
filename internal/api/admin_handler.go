package api

import (
	"net/http"

	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler serves the write-capable admin views. Every route here sits
// behind the session guard; none of the reads apply the published filter.
type AdminHandler struct {
	admin service.AdminService
	log   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin service.AdminService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin: admin,
		log:   log.With().Str("handler", "admin").Logger(),
	}
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// ListArticles handles GET /admin/news
func (h *AdminHandler) ListArticles(c *gin.Context) {
	articles, err := h.admin.ListAllArticles(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /admin/news/:id
func (h *AdminHandler) GetArticle(c *gin.Context) {
	article, err := h.admin.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateArticle handles POST /admin/news
func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.admin.CreateArticle(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle handles PUT /admin/news/:id
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.admin.UpdateArticle(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle handles DELETE /admin/news/:id
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	if err := h.admin.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEpisodes handles GET /admin/podcasts
func (h *AdminHandler) ListEpisodes(c *gin.Context) {
	episodes, err := h.admin.ListAllEpisodes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"episodes": episodes})
}

// GetEpisode handles GET /admin/podcasts/:id
func (h *AdminHandler) GetEpisode(c *gin.Context) {
	episode, err := h.admin.GetEpisode(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

// CreateEpisode handles POST /admin/podcasts
func (h *AdminHandler) CreateEpisode(c *gin.Context) {
	var input models.EpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	episode, err := h.admin.CreateEpisode(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, episode)
}

// UpdateEpisode handles PUT /admin/podcasts/:id
func (h *AdminHandler) UpdateEpisode(c *gin.Context) {
	var input models.EpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	episode, err := h.admin.UpdateEpisode(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

// DeleteEpisode handles DELETE /admin/podcasts/:id
func (h *AdminHandler) DeleteEpisode(c *gin.Context) {
	if err := h.admin.DeleteEpisode(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Seasons handles GET /admin/seasons
func (h *AdminHandler) Seasons(c *gin.Context) {
	seasons, err := h.admin.ListSeasonOverview(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// GetSettings handles GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.admin.ListSettings(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetSetting handles GET /admin/settings/:key
func (h *AdminHandler) GetSetting(c *gin.Context) {
	setting, err := h.admin.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// PutSetting handles PUT /admin/settings
func (h *AdminHandler) PutSetting(c *gin.Context) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.admin.PutSetting(c.Request.Context(), req.Key, req.Value); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
