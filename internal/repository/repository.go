package repository

import (
	"context"

	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/models"
)

// ArticleRepository defines the interface for article data operations.
// Public read methods apply the published filter; Admin methods bypass it.
type ArticleRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	AdminGetBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	ListPublished(ctx context.Context) ([]*models.Article, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]*models.Article, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Article, error)
	ListAll(ctx context.Context) ([]*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// EpisodeRepository defines the interface for podcast episode data operations
type EpisodeRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Episode, error)
	AdminGetBySlug(ctx context.Context, slug string) (*models.Episode, error)
	GetByID(ctx context.Context, id string) (*models.Episode, error)
	ListPublished(ctx context.Context) ([]*models.Episode, error)
	ListBySeason(ctx context.Context, season int) ([]*models.Episode, error)
	ListSeasons(ctx context.Context) ([]int, error)
	ListAll(ctx context.Context) ([]*models.Episode, error)
	Create(ctx context.Context, episode *models.Episode) error
	Update(ctx context.Context, episode *models.Episode) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	// Upsert inserts the category unless its slug already exists.
	// Returns true when a new row was inserted.
	Upsert(ctx context.Context, category *models.Category) (bool, error)
	Count(ctx context.Context) (int, error)
}

// AdminRepository defines the interface for admin accounts and sessions
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	// UpsertAdmin inserts the account unless its email already exists.
	// Returns true when a new row was inserted.
	UpsertAdmin(ctx context.Context, admin *models.AdminUser) (bool, error)
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	GetAdminByID(ctx context.Context, id string) (*models.AdminUser, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// SettingsRepository defines the interface for site settings
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	List(ctx context.Context) ([]*models.SiteSetting, error)
	Set(ctx context.Context, key, value string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Episode  EpisodeRepository
	Category CategoryRepository
	Admin    AdminRepository
	Settings SettingsRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Episode:  NewEpisodeRepo(db),
		Category: NewCategoryRepo(db),
		Admin:    NewAdminRepo(db),
		Settings: NewSettingsRepo(db),
	}
}
