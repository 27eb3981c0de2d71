package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/models"
)

const episodeColumns = `id, slug, title, guest, season, episode, description, topics, image,
	soundcloud_url, youtube_url, headline, subheadline, full_description, key_insights,
	guest_phone, guest_email, guest_address, guest_website, guest_website_label,
	published, created_at, updated_at`

// episodeRepo is the concrete implementation of EpisodeRepository
type episodeRepo struct {
	db *database.DB
}

// NewEpisodeRepo creates a new episode repository
func NewEpisodeRepo(db *database.DB) EpisodeRepository {
	return &episodeRepo{db: db}
}

func scanEpisode(row interface{ Scan(...any) error }) (*models.Episode, error) {
	var ep models.Episode
	var topicsJSON, insightsJSON []byte

	err := row.Scan(
		&ep.ID, &ep.Slug, &ep.Title, &ep.Guest, &ep.Season, &ep.Episode, &ep.Description,
		&topicsJSON, &ep.Image, &ep.SoundcloudURL, &ep.YoutubeURL,
		&ep.Headline, &ep.Subheadline, &ep.FullDescription, &insightsJSON,
		&ep.GuestContact.Phone, &ep.GuestContact.Email, &ep.GuestContact.Address,
		&ep.GuestContact.Website, &ep.GuestContact.WebsiteLabel,
		&ep.Published, &ep.CreatedAt, &ep.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(topicsJSON, &ep.Topics)
	json.Unmarshal(insightsJSON, &ep.KeyInsights)
	return &ep, nil
}

// GetBySlug retrieves a published episode by slug
func (r *episodeRepo) GetBySlug(ctx context.Context, slug string) (*models.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM episodes WHERE slug = $1 AND published = TRUE`, episodeColumns)
	return scanEpisode(r.db.QueryRowContext(ctx, query, slug))
}

// AdminGetBySlug retrieves an episode by slug regardless of publish state
func (r *episodeRepo) AdminGetBySlug(ctx context.Context, slug string) (*models.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM episodes WHERE slug = $1`, episodeColumns)
	return scanEpisode(r.db.QueryRowContext(ctx, query, slug))
}

// GetByID retrieves an episode by ID regardless of publish state
func (r *episodeRepo) GetByID(ctx context.Context, id string) (*models.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM episodes WHERE id = $1`, episodeColumns)
	return scanEpisode(r.db.QueryRowContext(ctx, query, id))
}

func (r *episodeRepo) list(ctx context.Context, query string, args ...any) ([]*models.Episode, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []*models.Episode
	for rows.Next() {
		ep, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

// ListPublished retrieves all published episodes, newest season/number first
func (r *episodeRepo) ListPublished(ctx context.Context) ([]*models.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM episodes WHERE published = TRUE ORDER BY season DESC, episode DESC`, episodeColumns)
	return r.list(ctx, query)
}

// ListBySeason retrieves published episodes for one season in episode order
func (r *episodeRepo) ListBySeason(ctx context.Context, season int) ([]*models.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM episodes WHERE published = TRUE AND season = $1 ORDER BY episode ASC`, episodeColumns)
	return r.list(ctx, query, season)
}

// ListSeasons retrieves the distinct seasons that have published episodes
func (r *episodeRepo) ListSeasons(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT season FROM episodes WHERE published = TRUE ORDER BY season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// ListAll retrieves every episode including drafts (admin listing)
func (r *episodeRepo) ListAll(ctx context.Context) ([]*models.Episode, error) {
	query := fmt.Sprintf(`SELECT %s FROM episodes ORDER BY season DESC, episode DESC`, episodeColumns)
	return r.list(ctx, query)
}

// Create inserts a new episode
func (r *episodeRepo) Create(ctx context.Context, ep *models.Episode) error {
	topicsJSON, _ := json.Marshal(ep.Topics)
	if ep.Topics == nil {
		topicsJSON = []byte("[]")
	}
	insightsJSON, _ := json.Marshal(ep.KeyInsights)
	if ep.KeyInsights == nil {
		insightsJSON = []byte("[]")
	}

	query := `
		INSERT INTO episodes (id, slug, title, guest, season, episode, description, topics, image,
			soundcloud_url, youtube_url, headline, subheadline, full_description, key_insights,
			guest_phone, guest_email, guest_address, guest_website, guest_website_label, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err := r.db.ExecContext(ctx, query,
		ep.ID, ep.Slug, ep.Title, ep.Guest, ep.Season, ep.Episode, ep.Description,
		topicsJSON, ep.Image, ep.SoundcloudURL, ep.YoutubeURL,
		ep.Headline, ep.Subheadline, ep.FullDescription, insightsJSON,
		ep.GuestContact.Phone, ep.GuestContact.Email, ep.GuestContact.Address,
		ep.GuestContact.Website, ep.GuestContact.WebsiteLabel, ep.Published,
	)
	return episodeWriteConflict(err)
}

// Update rewrites an existing episode; updated_at is set by the database
func (r *episodeRepo) Update(ctx context.Context, ep *models.Episode) error {
	topicsJSON, _ := json.Marshal(ep.Topics)
	if ep.Topics == nil {
		topicsJSON = []byte("[]")
	}
	insightsJSON, _ := json.Marshal(ep.KeyInsights)
	if ep.KeyInsights == nil {
		insightsJSON = []byte("[]")
	}

	query := `
		UPDATE episodes
		SET slug = $2, title = $3, guest = $4, season = $5, episode = $6, description = $7,
		    topics = $8, image = $9, soundcloud_url = $10, youtube_url = $11,
		    headline = $12, subheadline = $13, full_description = $14, key_insights = $15,
		    guest_phone = $16, guest_email = $17, guest_address = $18,
		    guest_website = $19, guest_website_label = $20, published = $21
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		ep.ID, ep.Slug, ep.Title, ep.Guest, ep.Season, ep.Episode, ep.Description,
		topicsJSON, ep.Image, ep.SoundcloudURL, ep.YoutubeURL,
		ep.Headline, ep.Subheadline, ep.FullDescription, insightsJSON,
		ep.GuestContact.Phone, ep.GuestContact.Email, ep.GuestContact.Address,
		ep.GuestContact.Website, ep.GuestContact.WebsiteLabel, ep.Published,
	)
	if err != nil {
		return episodeWriteConflict(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an episode by ID
func (r *episodeRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// episodeWriteConflict maps a unique violation on an episode write to the
// sentinel for the violated constraint. The episodes table carries two:
// the slug and the season/episode pair.
func episodeWriteConflict(err error) error {
	constraint, ok := uniqueViolationConstraint(err)
	if !ok {
		return err
	}
	if strings.Contains(constraint, "season") {
		return ErrEpisodeNumberConflict
	}
	return ErrSlugConflict
}

// Count returns the total number of episodes
func (r *episodeRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episodes`).Scan(&count)
	return count, err
}
