package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/brand-site-api/internal/api"
	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/mocks"
	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *repository.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := mocks.NewRepositories()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Site: config.SiteConfig{
			Name:        "The Brand",
			Origin:      "https://example.com",
			Description: "Articles, news and podcast episodes",
		},
		Auth: config.AuthConfig{
			SessionTTL: time.Hour,
			BcryptCost: bcrypt.MinCost,
			CookieName: "admin_session",
		},
		Upload: config.UploadConfig{
			Dir:           t.TempDir(),
			MaxImageSize:  64,
			MaxVideoSize:  256,
			ImageMIMEs:    []string{"image/jpeg", "image/png"},
			VideoMIMEs:    []string{"video/mp4"},
			PublicBaseURL: "/uploads",
		},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, log)
	router := api.NewRouter(services, cfg, log)

	return router, repos
}

func seedAdminAccount(repos *repository.Repositories, email, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	repos.Admin.(*mocks.MockAdminRepository).Admins[email] = &models.AdminUser{
		ID:           "admin-1",
		Email:        email,
		PasswordHash: hash,
	}
}

func loginAndGetCookie(t *testing.T, router *gin.Engine, email, password string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Login expected redirect, got %d: %s", w.Code, w.Body.String())
	}

	resp := http.Response{Header: w.Header()}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "admin_session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("Login did not set a session cookie")
	return nil
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestUnknownSlugReturns404WithMetaShell(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/no-such-content", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	var response struct {
		Meta struct {
			CanonicalURL string `json:"canonical_url"`
		} `json:"meta"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Meta.CanonicalURL != "https://example.com/404" {
		t.Errorf("Expected the fixed not-found shell, got %q", response.Meta.CanonicalURL)
	}
}

func TestSlugResolvesEpisodeOverArticle(t *testing.T) {
	router, repos := setupTestRouter(t)

	repos.Article.(*mocks.MockArticleRepository).Put(&models.Article{
		ID: "a-1", Slug: "shared", Title: "Article", Published: true, DisplayDate: time.Now(),
	})
	repos.Episode.(*mocks.MockEpisodeRepository).Put(&models.Episode{
		ID: "e-1", Slug: "shared", Title: "Episode", Season: 1, Episode: 1, Published: true,
	})

	req := httptest.NewRequest("GET", "/shared", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Data models.ContentRef `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response.Data.Kind != models.ContentKindEpisode {
		t.Errorf("Episode should win the tie-break, got %q", response.Data.Kind)
	}
}

func TestDraftContentHiddenFromPublicRoute(t *testing.T) {
	router, repos := setupTestRouter(t)

	repos.Article.(*mocks.MockArticleRepository).Put(&models.Article{
		ID: "a-1", Slug: "draft-post", Title: "Draft", Published: false, DisplayDate: time.Now(),
	})

	req := httptest.NewRequest("GET", "/draft-post", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Draft should be 404 publicly, got %d", w.Code)
	}
}

func TestAdminRedirectsWithoutSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/admin", "/admin/news", "/admin/podcasts", "/admin/settings"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusSeeOther {
			t.Errorf("%s: expected redirect, got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("%s: expected redirect to /admin/login, got %q", path, loc)
		}
	}
}

func TestLoginBadCredentials(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "right")

	form := url.Values{}
	form.Set("email", "admin@example.com")
	form.Set("password", "wrong")

	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] == "" {
		t.Error("Credential error message should be surfaced to the form")
	}
}

func TestLoginLogoutFlow(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "correct-horse")

	cookie := loginAndGetCookie(t, router, "admin@example.com", "correct-horse")

	// Authenticated: the dashboard renders
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Dashboard with session expected 200, got %d", w.Code)
	}

	// Logout tears the session down
	req = httptest.NewRequest("POST", "/admin/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Logout expected redirect, got %d", w.Code)
	}

	// Back to Anonymous: the old cookie no longer opens the dashboard
	req = httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Errorf("Stale session expected redirect, got %d", w.Code)
	}
}

func TestAdminListIncludesDrafts(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")

	repos.Article.(*mocks.MockArticleRepository).Put(&models.Article{
		ID: "a-1", Slug: "draft-post", Title: "Draft", Published: false, DisplayDate: time.Now(),
	})

	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	req := httptest.NewRequest("GET", "/admin/news", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Articles []models.Article `json:"articles"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Articles) != 1 {
		t.Errorf("Admin listing should include drafts, got %d", len(response.Articles))
	}
}

func TestCreateArticleConflictViaAPI(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")
	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	body := `{"title":"First","slug":"my-post","date":"2026-02-01T00:00:00Z","published":true}`
	req := httptest.NewRequest("POST", "/admin/news", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("First create expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body = `{"title":"Second","slug":"my-post","date":"2026-02-02T00:00:00Z","published":true}`
	req = httptest.NewRequest("POST", "/admin/news", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("Duplicate slug expected 409, got %d", w.Code)
	}
}

func TestCreateArticleValidationError(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")
	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	// Missing title
	body := `{"slug":"no-title","date":"2026-02-01T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/admin/news", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Missing title expected 422, got %d", w.Code)
	}

	// Reserved slug
	body = `{"title":"Admin Page","slug":"admin","date":"2026-02-01T00:00:00Z"}`
	req = httptest.NewRequest("POST", "/admin/news", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Reserved slug expected 422, got %d", w.Code)
	}
}

func multipartUpload(t *testing.T, kind, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("kind", kind)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(header)
	part.Write(payload)
	writer.Close()

	return &buf, writer.FormDataContentType()
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")
	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	// MaxImageSize in the test config is 64 bytes
	body, contentType := multipartUpload(t, "image", "big.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 128))
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Oversized upload expected 413, got %d", w.Code)
	}
}

func TestUploadRejectsDisallowedMIME(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")
	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	body, contentType := multipartUpload(t, "image", "evil.exe", "application/octet-stream", []byte("mz"))
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("Disallowed MIME expected 415, got %d", w.Code)
	}
}

func TestUploadAcceptsValidImage(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")
	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	body, contentType := multipartUpload(t, "image", "pic.png", "image/png", []byte("tiny"))
	req := httptest.NewRequest("POST", "/admin/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Valid upload expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if !strings.HasPrefix(response["url"], "/uploads/image_") {
		t.Errorf("Unexpected stored URL: %q", response["url"])
	}
}

func TestRobotsTxt(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/robots.txt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{"Disallow: /admin/", "Disallow: /api/", "Disallow: /private/", "Googlebot", "Sitemap: https://example.com/sitemap.xml"} {
		if !strings.Contains(body, want) {
			t.Errorf("robots.txt missing %q", want)
		}
	}
}

func TestSitemapListsPublishedOnly(t *testing.T) {
	router, repos := setupTestRouter(t)

	repos.Article.(*mocks.MockArticleRepository).Put(&models.Article{
		ID: "a-1", Slug: "public-post", Title: "Public", Published: true, DisplayDate: time.Now(),
	})
	repos.Article.(*mocks.MockArticleRepository).Put(&models.Article{
		ID: "a-2", Slug: "secret-draft", Title: "Secret", Published: false, DisplayDate: time.Now(),
	})

	req := httptest.NewRequest("GET", "/sitemap.xml", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "https://example.com/public-post") {
		t.Error("Sitemap should list the published article")
	}
	if strings.Contains(body, "secret-draft") {
		t.Error("Sitemap must not list drafts")
	}
	if !strings.Contains(body, "https://example.com/podcast") {
		t.Error("Sitemap should list the static pages")
	}
}

func TestCategoryPageViaAPI(t *testing.T) {
	router, repos := setupTestRouter(t)

	repos.Category.(*mocks.MockCategoryRepository).Categories["energy"] = &models.Category{
		ID: "c-1", Name: "Energy", Slug: "energy", UpdatedAt: time.Now(),
	}
	repos.Article.(*mocks.MockArticleRepository).Put(&models.Article{
		ID: "a-1", Slug: "grid-post", Title: "Grid", Category: "energy", Published: true, DisplayDate: time.Now(),
	})

	req := httptest.NewRequest("GET", "/category/energy", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Meta struct {
			CanonicalURL string `json:"canonical_url"`
		} `json:"meta"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Meta.CanonicalURL != "https://example.com/category/energy" {
		t.Errorf("Unexpected canonical URL: %q", response.Meta.CanonicalURL)
	}
}

func TestUnknownCategoryReturnsNotFoundShell(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/category/no-such-category", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	var response struct {
		Meta struct {
			CanonicalURL string `json:"canonical_url"`
		} `json:"meta"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Meta.CanonicalURL != "https://example.com/404" {
		t.Errorf("Expected the fixed not-found shell, got %q", response.Meta.CanonicalURL)
	}
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	router, repos := setupTestRouter(t)
	seedAdminAccount(repos, "admin@example.com", "pw")
	cookie := loginAndGetCookie(t, router, "admin@example.com", "pw")

	req := httptest.NewRequest("GET", "/admin/login", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Authenticated login page expected redirect to dashboard, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Expected redirect to /admin, got %q", loc)
	}
}
