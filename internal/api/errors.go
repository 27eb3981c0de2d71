package api

import (
	"errors"
	"net/http"

	"github.com/brand-site-api/internal/repository"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Provider failures get a generic message; nothing internal leaks.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrSlugConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "a record with this slug already exists"})
	case errors.Is(err, repository.ErrEpisodeNumberConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "an episode with this season and episode number already exists"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
	}
}
