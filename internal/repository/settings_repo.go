package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/models"
)

// settingsRepo is the concrete implementation of SettingsRepository
type settingsRepo struct {
	db *database.DB
}

// NewSettingsRepo creates a new settings repository
func NewSettingsRepo(db *database.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

// Get retrieves a single setting by key
func (r *settingsRepo) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	var s models.SiteSetting
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM site_settings WHERE key = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List retrieves all settings ordered by key
func (r *settingsRepo) List(ctx context.Context) ([]*models.SiteSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.SiteSetting
	for rows.Next() {
		var s models.SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

// Set writes a setting, inserting or overwriting as needed
func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	return err
}
