package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DashboardStats summarizes content counts for the admin landing view
type DashboardStats struct {
	Articles   int `json:"articles"`
	Episodes   int `json:"episodes"`
	Categories int `json:"categories"`
}

// SeasonOverview lists one season with every episode in it, drafts included
type SeasonOverview struct {
	Season   int               `json:"season"`
	Episodes []*models.Episode `json:"episodes"`
}

// adminService is the concrete implementation of AdminService
type adminService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newAdminService(repos *repository.Repositories, log zerolog.Logger) AdminService {
	return &adminService{
		repos: repos,
		log:   log.With().Str("service", "admin").Logger(),
	}
}

// DashboardStats counts all content, drafts included
func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	articles, err := s.repos.Article.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting articles: %w", err)
	}
	episodes, err := s.repos.Episode.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting episodes: %w", err)
	}
	categories, err := s.repos.Category.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	return &DashboardStats{Articles: articles, Episodes: episodes, Categories: categories}, nil
}

// slugTaken checks both content namespaces. Articles and episodes share the
// single top-level route, so a slug used by either collection is taken.
// exceptArticleID/exceptEpisodeID let updates keep their own slug.
func (s *adminService) slugTaken(ctx context.Context, slug, exceptArticleID, exceptEpisodeID string) (bool, error) {
	if article, err := s.repos.Article.AdminGetBySlug(ctx, slug); err == nil {
		if article.ID != exceptArticleID {
			return true, nil
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	if episode, err := s.repos.Episode.AdminGetBySlug(ctx, slug); err == nil {
		if episode.ID != exceptEpisodeID {
			return true, nil
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	return false, nil
}

func (s *adminService) checkSlugFree(ctx context.Context, slug, exceptArticleID, exceptEpisodeID string) error {
	taken, err := s.slugTaken(ctx, slug, exceptArticleID, exceptEpisodeID)
	if err != nil {
		return fmt.Errorf("checking slug %q: %w", slug, err)
	}
	if taken {
		return repository.ErrSlugConflict
	}
	return nil
}

// ListAllArticles returns every article, drafts included
func (s *adminService) ListAllArticles(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Article.ListAll(ctx)
}

// GetArticle returns an article by ID regardless of publish state
func (s *adminService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.repos.Article.GetByID(ctx, id)
}

// CreateArticle validates input, derives the slug when absent, and inserts.
// A slug collision in either namespace rejects the write untouched.
func (s *adminService) CreateArticle(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	if input.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if input.DisplayDate.IsZero() {
		return nil, &ValidationError{Field: "date", Message: "date is required"}
	}

	articleSlug, err := normalizeSlug(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlugFree(ctx, articleSlug, "", ""); err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:          uuid.New().String(),
		Slug:        articleSlug,
		Title:       input.Title,
		Excerpt:     input.Excerpt,
		Content:     input.Content,
		DisplayDate: input.DisplayDate,
		Category:    input.Category,
		Image:       input.Image,
		Author:      input.Author,
		Tags:        input.Tags,
		Published:   input.Published,
		Featured:    input.Featured,
	}
	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Bool("published", article.Published).Msg("Article created")
	return s.repos.Article.GetByID(ctx, article.ID)
}

// UpdateArticle rewrites an article; the slug may change as long as it stays
// free in both namespaces
func (s *adminService) UpdateArticle(ctx context.Context, id string, input *models.ArticleInput) (*models.Article, error) {
	existing, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	articleSlug, err := normalizeSlug(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlugFree(ctx, articleSlug, existing.ID, ""); err != nil {
		return nil, err
	}

	existing.Slug = articleSlug
	existing.Title = input.Title
	existing.Excerpt = input.Excerpt
	existing.Content = input.Content
	if !input.DisplayDate.IsZero() {
		existing.DisplayDate = input.DisplayDate
	}
	existing.Category = input.Category
	existing.Image = input.Image
	existing.Author = input.Author
	existing.Tags = input.Tags
	existing.Published = input.Published
	existing.Featured = input.Featured

	if err := s.repos.Article.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info().Str("article_id", id).Str("slug", existing.Slug).Msg("Article updated")
	return s.repos.Article.GetByID(ctx, id)
}

// DeleteArticle removes an article by ID
func (s *adminService) DeleteArticle(ctx context.Context, id string) error {
	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// ListAllEpisodes returns every episode, drafts included
func (s *adminService) ListAllEpisodes(ctx context.Context) ([]*models.Episode, error) {
	return s.repos.Episode.ListAll(ctx)
}

// GetEpisode returns an episode by ID regardless of publish state
func (s *adminService) GetEpisode(ctx context.Context, id string) (*models.Episode, error) {
	return s.repos.Episode.GetByID(ctx, id)
}

// CreateEpisode validates input, derives the slug when absent, and inserts
func (s *adminService) CreateEpisode(ctx context.Context, input *models.EpisodeInput) (*models.Episode, error) {
	if input.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if input.Season <= 0 {
		return nil, &ValidationError{Field: "season", Message: "season must be positive"}
	}
	if input.Episode <= 0 {
		return nil, &ValidationError{Field: "episode", Message: "episode number must be positive"}
	}

	episodeSlug, err := normalizeSlug(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlugFree(ctx, episodeSlug, "", ""); err != nil {
		return nil, err
	}

	episode := &models.Episode{
		ID:              uuid.New().String(),
		Slug:            episodeSlug,
		Title:           input.Title,
		Guest:           input.Guest,
		Season:          input.Season,
		Episode:         input.Episode,
		Description:     input.Description,
		Topics:          input.Topics,
		Image:           input.Image,
		SoundcloudURL:   input.SoundcloudURL,
		YoutubeURL:      input.YoutubeURL,
		Headline:        input.Headline,
		Subheadline:     input.Subheadline,
		FullDescription: input.FullDescription,
		KeyInsights:     input.KeyInsights,
		GuestContact:    input.GuestContact,
		Published:       input.Published,
	}
	if err := s.repos.Episode.Create(ctx, episode); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("episode_id", episode.ID).
		Str("slug", episode.Slug).
		Int("season", episode.Season).
		Int("episode", episode.Episode).
		Msg("Episode created")
	return s.repos.Episode.GetByID(ctx, episode.ID)
}

// UpdateEpisode rewrites an episode
func (s *adminService) UpdateEpisode(ctx context.Context, id string, input *models.EpisodeInput) (*models.Episode, error) {
	existing, err := s.repos.Episode.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if input.Season <= 0 {
		return nil, &ValidationError{Field: "season", Message: "season must be positive"}
	}
	if input.Episode <= 0 {
		return nil, &ValidationError{Field: "episode", Message: "episode number must be positive"}
	}

	episodeSlug, err := normalizeSlug(input.Slug, input.Title)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlugFree(ctx, episodeSlug, "", existing.ID); err != nil {
		return nil, err
	}

	existing.Slug = episodeSlug
	existing.Title = input.Title
	existing.Guest = input.Guest
	existing.Season = input.Season
	existing.Episode = input.Episode
	existing.Description = input.Description
	existing.Topics = input.Topics
	existing.Image = input.Image
	existing.SoundcloudURL = input.SoundcloudURL
	existing.YoutubeURL = input.YoutubeURL
	existing.Headline = input.Headline
	existing.Subheadline = input.Subheadline
	existing.FullDescription = input.FullDescription
	existing.KeyInsights = input.KeyInsights
	existing.GuestContact = input.GuestContact
	existing.Published = input.Published

	if err := s.repos.Episode.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.log.Info().Str("episode_id", id).Str("slug", existing.Slug).Msg("Episode updated")
	return s.repos.Episode.GetByID(ctx, id)
}

// DeleteEpisode removes an episode by ID
func (s *adminService) DeleteEpisode(ctx context.Context, id string) error {
	if err := s.repos.Episode.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("episode_id", id).Msg("Episode deleted")
	return nil
}

// ListSeasonOverview groups every episode by season, drafts included
func (s *adminService) ListSeasonOverview(ctx context.Context) ([]*SeasonOverview, error) {
	episodes, err := s.repos.Episode.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	bySeason := make(map[int]*SeasonOverview)
	var overviews []*SeasonOverview
	for _, ep := range episodes {
		overview, ok := bySeason[ep.Season]
		if !ok {
			overview = &SeasonOverview{Season: ep.Season}
			bySeason[ep.Season] = overview
			overviews = append(overviews, overview)
		}
		overview.Episodes = append(overview.Episodes, ep)
	}
	return overviews, nil
}

// ListSettings returns all site settings
func (s *adminService) ListSettings(ctx context.Context) ([]*models.SiteSetting, error) {
	return s.repos.Settings.List(ctx)
}

// GetSetting returns one site setting by key
func (s *adminService) GetSetting(ctx context.Context, key string) (*models.SiteSetting, error) {
	return s.repos.Settings.Get(ctx, key)
}

// PutSetting writes one site setting
func (s *adminService) PutSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return &ValidationError{Field: "key", Message: "key is required"}
	}
	if err := s.repos.Settings.Set(ctx, key, value); err != nil {
		return err
	}
	s.log.Info().Str("key", key).Msg("Setting updated")
	return nil
}
