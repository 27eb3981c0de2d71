package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const featuredLimit = 3

// HomePage aggregates the content the landing page needs
type HomePage struct {
	Featured       []*models.Article `json:"featured"`
	LatestArticles []*models.Article `json:"latest_articles"`
	LatestEpisodes []*models.Episode `json:"latest_episodes"`
}

// CategoryPage aggregates a category and its published articles
type CategoryPage struct {
	Category *models.Category  `json:"category"`
	Articles []*models.Article `json:"articles"`
}

// contentService is the concrete implementation of ContentService
type contentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newContentService(repos *repository.Repositories, log zerolog.Logger) ContentService {
	return &contentService{
		repos: repos,
		log:   log.With().Str("service", "content").Logger(),
	}
}

// Resolve maps a single path segment to a piece of published content.
// Episodes are looked up before articles; when a slug exists in both
// collections the episode wins. This ordering is the sole tie-break and
// must not change.
func (s *contentService) Resolve(ctx context.Context, slug string) (*models.ContentRef, error) {
	if slug == "" {
		return nil, repository.ErrNotFound
	}

	episode, err := s.repos.Episode.GetBySlug(ctx, slug)
	if err == nil {
		return &models.ContentRef{Kind: models.ContentKindEpisode, Episode: episode}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("resolving episode slug %q: %w", slug, err)
	}

	article, err := s.repos.Article.GetBySlug(ctx, slug)
	if err == nil {
		return &models.ContentRef{Kind: models.ContentKindArticle, Article: article}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("resolving article slug %q: %w", slug, err)
	}

	return nil, repository.ErrNotFound
}

// HomePage fetches the three independent landing-page sections in parallel
func (s *contentService) HomePage(ctx context.Context) (*HomePage, error) {
	var page HomePage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		featured, err := s.repos.Article.ListFeatured(gctx, featuredLimit)
		page.Featured = featured
		return err
	})
	g.Go(func() error {
		articles, err := s.repos.Article.ListPublished(gctx)
		page.LatestArticles = articles
		return err
	})
	g.Go(func() error {
		episodes, err := s.repos.Episode.ListPublished(gctx)
		page.LatestEpisodes = episodes
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading home page: %w", err)
	}
	return &page, nil
}

// ListArticles returns all published articles, newest first
func (s *contentService) ListArticles(ctx context.Context) ([]*models.Article, error) {
	return s.repos.Article.ListPublished(ctx)
}

// ListEpisodes returns all published episodes
func (s *contentService) ListEpisodes(ctx context.Context) ([]*models.Episode, error) {
	return s.repos.Episode.ListPublished(ctx)
}

// ListCategories returns all categories, including ones with no content
func (s *contentService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Category.List(ctx)
}

// CategoryPage fetches the category record and its articles concurrently.
// The two reads target disjoint tables and carry no ordering guarantee
// relative to each other.
func (s *contentService) CategoryPage(ctx context.Context, slug string) (*CategoryPage, error) {
	var page CategoryPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		category, err := s.repos.Category.GetBySlug(gctx, slug)
		page.Category = category
		return err
	})
	g.Go(func() error {
		articles, err := s.repos.Article.ListByCategory(gctx, slug)
		page.Articles = articles
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("loading category %q: %w", slug, err)
	}
	return &page, nil
}

// Seasons returns the seasons that have published episodes
func (s *contentService) Seasons(ctx context.Context) ([]int, error) {
	return s.repos.Episode.ListSeasons(ctx)
}

// SeasonEpisodes returns the published episodes of one season
func (s *contentService) SeasonEpisodes(ctx context.Context, season int) ([]*models.Episode, error) {
	return s.repos.Episode.ListBySeason(ctx, season)
}
