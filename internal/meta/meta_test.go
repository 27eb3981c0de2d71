package meta_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/brand-site-api/internal/meta"
	"github.com/brand-site-api/internal/models"
)

var testSite = meta.Site{
	Name:        "The Brand",
	Origin:      "https://example.com",
	Description: "Articles, news and podcast episodes",
	TwitterUser: "@thebrand",
}

func testArticle() *models.Article {
	return &models.Article{
		ID:          "a-1",
		Slug:        "energy-markets-2026",
		Title:       "Energy Markets in 2026",
		Excerpt:     "Where energy prices are heading next year.",
		Category:    "energy",
		Image:       "/images/energy.jpg",
		Published:   true,
		DisplayDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestForArticle(t *testing.T) {
	m := testSite.ForArticle(testArticle())

	if m.Title != "Energy Markets in 2026 | The Brand" {
		t.Errorf("Unexpected title: %q", m.Title)
	}
	if m.Description != "Where energy prices are heading next year." {
		t.Errorf("Unexpected description: %q", m.Description)
	}
	if m.CanonicalURL != "https://example.com/energy-markets-2026" {
		t.Errorf("Unexpected canonical URL: %q", m.CanonicalURL)
	}
	if m.OpenGraph.Image != "https://example.com/images/energy.jpg" {
		t.Errorf("Relative image should be prefixed with origin, got %q", m.OpenGraph.Image)
	}
	if m.TwitterCard.Card != "summary_large_image" {
		t.Errorf("Expected summary_large_image card, got %q", m.TwitterCard.Card)
	}
}

func TestForEpisodeIncludesGuest(t *testing.T) {
	ep := &models.Episode{
		Slug:        "talking-energy",
		Title:       "Talking Energy",
		Guest:       "Jordan Smith",
		Description: "A conversation about grid resilience.",
	}

	m := testSite.ForEpisode(ep)
	if m.Title != "Talking Energy with Jordan Smith | The Brand" {
		t.Errorf("Unexpected title: %q", m.Title)
	}
	if m.TwitterCard.Card != "summary" {
		t.Errorf("Imageless episode should use summary card, got %q", m.TwitterCard.Card)
	}
}

func TestGenerationIsPure(t *testing.T) {
	article := testArticle()

	first := testSite.ForArticle(article)
	second := testSite.ForArticle(article)

	if !reflect.DeepEqual(first, second) {
		t.Error("Two calls with the same record should produce identical metadata")
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Error("Serialized metadata should be byte-identical across calls")
	}
}

func TestNotFoundShellIsFixed(t *testing.T) {
	first := testSite.NotFound()
	second := testSite.NotFound()

	if !reflect.DeepEqual(first, second) {
		t.Error("Not-found shell should be identical across calls")
	}
	if first.Title != "Page Not Found | The Brand" {
		t.Errorf("Unexpected not-found title: %q", first.Title)
	}
	if first.CanonicalURL != "https://example.com/404" {
		t.Errorf("Unexpected not-found canonical URL: %q", first.CanonicalURL)
	}
}

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"absolute http", "http://cdn.example.org/pic.jpg", "http://cdn.example.org/pic.jpg"},
		{"absolute https", "https://cdn.example.org/pic.jpg", "https://cdn.example.org/pic.jpg"},
		{"rooted relative", "/images/pic.jpg", "https://example.com/images/pic.jpg"},
		{"bare relative", "images/pic.jpg", "https://example.com/images/pic.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testSite.NormalizeImageURL(tt.input); got != tt.want {
				t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLongDescriptionTruncated(t *testing.T) {
	article := testArticle()
	article.Excerpt = strings.Repeat("energy prices ", 30)

	m := testSite.ForArticle(article)
	if len(m.Description) > 170 {
		t.Errorf("Description should be truncated, got %d bytes", len(m.Description))
	}
}

func TestMultibyteDescriptionTruncatedOnRuneBoundary(t *testing.T) {
	article := testArticle()
	// No spaces, so the cut cannot land on a word boundary
	article.Excerpt = strings.Repeat("あ", 100)

	m := testSite.ForArticle(article)
	if !utf8.ValidString(m.Description) {
		t.Errorf("Truncated description is not valid UTF-8: %q", m.Description)
	}
	if !strings.HasSuffix(m.Description, "…") {
		t.Errorf("Truncated description should end with an ellipsis, got %q", m.Description)
	}
	for _, r := range m.Description {
		if r != 'あ' && r != '…' {
			t.Errorf("Unexpected rune %q in truncated description", r)
		}
	}
}

func TestCategoryFallsBackToSiteDescription(t *testing.T) {
	cat := &models.Category{Name: "Energy", Slug: "energy"}

	m := testSite.ForCategory(cat)
	if m.Description != testSite.Description {
		t.Errorf("Empty category description should fall back to site description, got %q", m.Description)
	}
	if m.CanonicalURL != "https://example.com/category/energy" {
		t.Errorf("Unexpected canonical URL: %q", m.CanonicalURL)
	}
}
