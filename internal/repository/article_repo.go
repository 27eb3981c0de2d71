package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/models"
)

const articleColumns = `id, slug, title, excerpt, content, display_date, category, image, author, tags, published, featured, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

func scanArticle(row interface{ Scan(...any) error }) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Excerpt, &article.Content,
		&article.DisplayDate, &article.Category, &article.Image, &article.Author,
		&tagsJSON, &article.Published, &article.Featured,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &article.Tags)
	return &article, nil
}

// GetBySlug retrieves a published article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug = $1 AND published = TRUE`, articleColumns)
	return scanArticle(r.db.QueryRowContext(ctx, query, slug))
}

// AdminGetBySlug retrieves an article by slug regardless of publish state
func (r *articleRepo) AdminGetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE slug = $1`, articleColumns)
	return scanArticle(r.db.QueryRowContext(ctx, query, slug))
}

// GetByID retrieves an article by ID regardless of publish state
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)
	return scanArticle(r.db.QueryRowContext(ctx, query, id))
}

func (r *articleRepo) list(ctx context.Context, query string, args ...any) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// ListPublished retrieves all published articles, newest display date first
func (r *articleRepo) ListPublished(ctx context.Context) ([]*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE published = TRUE ORDER BY display_date DESC`, articleColumns)
	return r.list(ctx, query)
}

// ListByCategory retrieves published articles matching the category slug,
// newest display date first
func (r *articleRepo) ListByCategory(ctx context.Context, categorySlug string) ([]*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE published = TRUE AND category = $1 ORDER BY display_date DESC`, articleColumns)
	return r.list(ctx, query, categorySlug)
}

// ListFeatured retrieves the most recent published featured articles
func (r *articleRepo) ListFeatured(ctx context.Context, limit int) ([]*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE published = TRUE AND featured = TRUE ORDER BY display_date DESC LIMIT $1`, articleColumns)
	return r.list(ctx, query, limit)
}

// ListAll retrieves every article including drafts (admin listing)
func (r *articleRepo) ListAll(ctx context.Context) ([]*models.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles ORDER BY display_date DESC`, articleColumns)
	return r.list(ctx, query)
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		INSERT INTO articles (id, slug, title, excerpt, content, display_date, category, image, author, tags, published, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Excerpt, article.Content,
		article.DisplayDate, article.Category, article.Image, article.Author,
		tagsJSON, article.Published, article.Featured,
	)
	if uniqueViolation(err) {
		return ErrSlugConflict
	}
	return err
}

// Update rewrites an existing article; updated_at is set by the database
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	query := `
		UPDATE articles
		SET slug = $2, title = $3, excerpt = $4, content = $5, display_date = $6,
		    category = $7, image = $8, author = $9, tags = $10, published = $11, featured = $12
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.Excerpt, article.Content,
		article.DisplayDate, article.Category, article.Image, article.Author,
		tagsJSON, article.Published, article.Featured,
	)
	if uniqueViolation(err) {
		return ErrSlugConflict
	}
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an article by ID
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	return count, err
}
