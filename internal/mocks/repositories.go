package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
)

// MockArticleRepository is a map-backed implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[string]*models.Article
	Err      error // returned from every call when set
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[string]*models.Article)}
}

// Put stores an article directly, bypassing validation (test setup helper)
func (m *MockArticleRepository) Put(article *models.Article) {
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	if article.UpdatedAt.IsZero() {
		article.UpdatedAt = article.CreatedAt
	}
	m.Articles[article.ID] = article
}

func (m *MockArticleRepository) bySlug(slug string) *models.Article {
	for _, a := range m.Articles {
		if a.Slug == slug {
			return a
		}
	}
	return nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if a := m.bySlug(slug); a != nil && a.Published {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepository) AdminGetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if a := m.bySlug(slug); a != nil {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if a, ok := m.Articles[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepository) listSorted(filter func(*models.Article) bool) []*models.Article {
	var out []*models.Article
	for _, a := range m.Articles {
		if filter(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayDate.After(out[j].DisplayDate)
	})
	return out
}

func (m *MockArticleRepository) ListPublished(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.listSorted(func(a *models.Article) bool { return a.Published }), nil
}

func (m *MockArticleRepository) ListByCategory(ctx context.Context, categorySlug string) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.listSorted(func(a *models.Article) bool {
		return a.Published && a.Category == categorySlug
	}), nil
}

func (m *MockArticleRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := m.listSorted(func(a *models.Article) bool { return a.Published && a.Featured })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockArticleRepository) ListAll(ctx context.Context) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.listSorted(func(*models.Article) bool { return true }), nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	if m.bySlug(article.Slug) != nil {
		return repository.ErrSlugConflict
	}
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	if existing := m.bySlug(article.Slug); existing != nil && existing.ID != article.ID {
		return repository.ErrSlugConflict
	}
	if _, ok := m.Articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	article.UpdatedAt = time.Now()
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Articles), nil
}

// MockEpisodeRepository is a map-backed implementation of EpisodeRepository
type MockEpisodeRepository struct {
	Episodes map[string]*models.Episode
	Err      error
}

func NewMockEpisodeRepository() *MockEpisodeRepository {
	return &MockEpisodeRepository{Episodes: make(map[string]*models.Episode)}
}

// Put stores an episode directly, bypassing validation (test setup helper)
func (m *MockEpisodeRepository) Put(episode *models.Episode) {
	if episode.CreatedAt.IsZero() {
		episode.CreatedAt = time.Now()
	}
	if episode.UpdatedAt.IsZero() {
		episode.UpdatedAt = episode.CreatedAt
	}
	m.Episodes[episode.ID] = episode
}

func (m *MockEpisodeRepository) bySlug(slug string) *models.Episode {
	for _, e := range m.Episodes {
		if e.Slug == slug {
			return e
		}
	}
	return nil
}

func (m *MockEpisodeRepository) GetBySlug(ctx context.Context, slug string) (*models.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if e := m.bySlug(slug); e != nil && e.Published {
		return e, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockEpisodeRepository) AdminGetBySlug(ctx context.Context, slug string) (*models.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if e := m.bySlug(slug); e != nil {
		return e, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockEpisodeRepository) GetByID(ctx context.Context, id string) (*models.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if e, ok := m.Episodes[id]; ok {
		return e, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockEpisodeRepository) listSorted(filter func(*models.Episode) bool) []*models.Episode {
	var out []*models.Episode
	for _, e := range m.Episodes {
		if filter(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season > out[j].Season
		}
		return out[i].Episode > out[j].Episode
	})
	return out
}

func (m *MockEpisodeRepository) ListPublished(ctx context.Context) ([]*models.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.listSorted(func(e *models.Episode) bool { return e.Published }), nil
}

func (m *MockEpisodeRepository) ListBySeason(ctx context.Context, season int) ([]*models.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := m.listSorted(func(e *models.Episode) bool {
		return e.Published && e.Season == season
	})
	// ListBySeason orders episode ascending
	sort.Slice(out, func(i, j int) bool { return out[i].Episode < out[j].Episode })
	return out, nil
}

func (m *MockEpisodeRepository) ListSeasons(ctx context.Context) ([]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := make(map[int]bool)
	var seasons []int
	for _, e := range m.Episodes {
		if e.Published && !seen[e.Season] {
			seen[e.Season] = true
			seasons = append(seasons, e.Season)
		}
	}
	sort.Ints(seasons)
	return seasons, nil
}

func (m *MockEpisodeRepository) ListAll(ctx context.Context) ([]*models.Episode, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.listSorted(func(*models.Episode) bool { return true }), nil
}

func (m *MockEpisodeRepository) byNumber(season, episode int) *models.Episode {
	for _, e := range m.Episodes {
		if e.Season == season && e.Episode == episode {
			return e
		}
	}
	return nil
}

func (m *MockEpisodeRepository) Create(ctx context.Context, episode *models.Episode) error {
	if m.Err != nil {
		return m.Err
	}
	if m.bySlug(episode.Slug) != nil {
		return repository.ErrSlugConflict
	}
	if m.byNumber(episode.Season, episode.Episode) != nil {
		return repository.ErrEpisodeNumberConflict
	}
	episode.CreatedAt = time.Now()
	episode.UpdatedAt = episode.CreatedAt
	m.Episodes[episode.ID] = episode
	return nil
}

func (m *MockEpisodeRepository) Update(ctx context.Context, episode *models.Episode) error {
	if m.Err != nil {
		return m.Err
	}
	if existing := m.bySlug(episode.Slug); existing != nil && existing.ID != episode.ID {
		return repository.ErrSlugConflict
	}
	if existing := m.byNumber(episode.Season, episode.Episode); existing != nil && existing.ID != episode.ID {
		return repository.ErrEpisodeNumberConflict
	}
	if _, ok := m.Episodes[episode.ID]; !ok {
		return repository.ErrNotFound
	}
	episode.UpdatedAt = time.Now()
	m.Episodes[episode.ID] = episode
	return nil
}

func (m *MockEpisodeRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Episodes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Episodes, id)
	return nil
}

func (m *MockEpisodeRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Episodes), nil
}

// MockCategoryRepository is a map-backed implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*models.Category // keyed by slug
	Err        error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[string]*models.Category)}
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if c, ok := m.Categories[slug]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Category
	for _, c := range m.Categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, category *models.Category) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, exists := m.Categories[category.Slug]; exists {
		return false, nil
	}
	cp := *category
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.Categories[category.Slug] = &cp
	return true, nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Categories), nil
}

// MockAdminRepository is a map-backed implementation of AdminRepository
type MockAdminRepository struct {
	Admins   map[string]*models.AdminUser // keyed by email
	Sessions map[string]*models.Session   // keyed by token
	Err      error
}

func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{
		Admins:   make(map[string]*models.AdminUser),
		Sessions: make(map[string]*models.Session),
	}
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if a, ok := m.Admins[email]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockAdminRepository) UpsertAdmin(ctx context.Context, admin *models.AdminUser) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, exists := m.Admins[admin.Email]; exists {
		return false, nil
	}
	cp := *admin
	cp.CreatedAt = time.Now()
	m.Admins[admin.Email] = &cp
	return true, nil
}

func (m *MockAdminRepository) GetAdminByID(ctx context.Context, id string) (*models.AdminUser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockAdminRepository) CreateSession(ctx context.Context, session *models.Session) error {
	if m.Err != nil {
		return m.Err
	}
	session.CreatedAt = time.Now()
	m.Sessions[session.Token] = session
	return nil
}

func (m *MockAdminRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Sessions[token]
	if !ok || s.Expired(time.Now()) {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (m *MockAdminRepository) DeleteSession(ctx context.Context, token string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Sessions, token)
	return nil
}

func (m *MockAdminRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	now := time.Now()
	for token, s := range m.Sessions {
		if s.Expired(now) {
			delete(m.Sessions, token)
			n++
		}
	}
	return n, nil
}

// MockSettingsRepository is a map-backed implementation of SettingsRepository
type MockSettingsRepository struct {
	Settings map[string]*models.SiteSetting
	Err      error
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{Settings: make(map[string]*models.SiteSetting)}
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Settings[key]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MockSettingsRepository) List(ctx context.Context) ([]*models.SiteSetting, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.SiteSetting
	for _, s := range m.Settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Settings[key] = &models.SiteSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

// NewRepositories assembles a full mock-backed repository set
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Article:  NewMockArticleRepository(),
		Episode:  NewMockEpisodeRepository(),
		Category: NewMockCategoryRepository(),
		Admin:    NewMockAdminRepository(),
		Settings: NewMockSettingsRepository(),
	}
}
