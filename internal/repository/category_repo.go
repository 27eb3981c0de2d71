package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	var cat models.Category
	err := row.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetBySlug retrieves a category by slug
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, name, slug, description, created_at, updated_at FROM categories WHERE slug = $1`
	return scanCategory(r.db.QueryRowContext(ctx, query, slug))
}

// List retrieves all categories ordered by name
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// Upsert inserts the category unless its slug already exists. The seed runs
// this on every startup; existing rows are left untouched.
func (r *categoryRepo) Upsert(ctx context.Context, cat *models.Category) (bool, error) {
	query := `
		INSERT INTO categories (id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Slug, cat.Description)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// Count returns the total number of categories
func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}
