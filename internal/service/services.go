package service

import (
	"context"

	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/rs/zerolog"
)

// ContentService defines the public, unauthenticated read operations.
// Everything it returns is published content only.
type ContentService interface {
	Resolve(ctx context.Context, slug string) (*models.ContentRef, error)
	HomePage(ctx context.Context) (*HomePage, error)
	ListArticles(ctx context.Context) ([]*models.Article, error)
	ListEpisodes(ctx context.Context) ([]*models.Episode, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CategoryPage(ctx context.Context, slug string) (*CategoryPage, error)
	Seasons(ctx context.Context) ([]int, error)
	SeasonEpisodes(ctx context.Context, season int) ([]*models.Episode, error)
}

// AdminService defines the authenticated write-capable operations.
// None of them apply the published filter.
type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)

	ListAllArticles(ctx context.Context) ([]*models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, input *models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error

	ListAllEpisodes(ctx context.Context) ([]*models.Episode, error)
	GetEpisode(ctx context.Context, id string) (*models.Episode, error)
	CreateEpisode(ctx context.Context, input *models.EpisodeInput) (*models.Episode, error)
	UpdateEpisode(ctx context.Context, id string, input *models.EpisodeInput) (*models.Episode, error)
	DeleteEpisode(ctx context.Context, id string) error

	ListSeasonOverview(ctx context.Context) ([]*SeasonOverview, error)

	ListSettings(ctx context.Context) ([]*models.SiteSetting, error)
	GetSetting(ctx context.Context, key string) (*models.SiteSetting, error)
	PutSetting(ctx context.Context, key, value string) error
}

// AuthService manages the admin account and session lifecycle
type AuthService interface {
	// EnsureAdmin provisions the configured bootstrap admin account.
	// Idempotent; an existing account keeps its stored password.
	EnsureAdmin(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.AdminUser, error)
	// PurgeExpiredSessions removes sessions past their TTL and reports how
	// many were deleted.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// SeedService seeds baseline content at startup
type SeedService interface {
	SeedCategories(ctx context.Context) (*SeedResult, error)
}

// Services holds all service interfaces
type Services struct {
	Content ContentService
	Admin   AdminService
	Auth    AuthService
	Seed    SeedService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Content: newContentService(repos, log),
		Admin:   newAdminService(repos, log),
		Auth:    newAuthService(repos.Admin, &cfg.Auth, log),
		Seed:    newSeedService(repos.Category, log),
	}
}
