// Package meta builds page-level SEO metadata from content records.
// Every function here is pure: same record in, byte-identical metadata out.
package meta

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/brand-site-api/internal/models"
)

// Site identifies the origin the metadata is generated for
type Site struct {
	Name        string
	Origin      string // absolute, no trailing slash
	Description string
	TwitterUser string
}

// OpenGraph holds the og:* tag values
type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"site_name"`
}

// TwitterCard holds the twitter:* tag values
type TwitterCard struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Site        string `json:"site,omitempty"`
}

// PageMeta is the full description of a rendered page
type PageMeta struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	CanonicalURL string      `json:"canonical_url"`
	OpenGraph    OpenGraph   `json:"open_graph"`
	TwitterCard  TwitterCard `json:"twitter_card"`
}

const maxDescriptionLen = 160

// ForArticle builds metadata for an article detail page
func (s Site) ForArticle(a *models.Article) PageMeta {
	desc := truncate(firstNonEmpty(a.Excerpt, s.Description), maxDescriptionLen)
	return s.build(a.Title, desc, "/"+a.Slug, "article", s.NormalizeImageURL(a.Image))
}

// ForEpisode builds metadata for an episode detail page
func (s Site) ForEpisode(e *models.Episode) PageMeta {
	title := e.Title
	if e.Guest != "" {
		title = fmt.Sprintf("%s with %s", e.Title, e.Guest)
	}
	desc := truncate(firstNonEmpty(e.Description, s.Description), maxDescriptionLen)
	return s.build(title, desc, "/"+e.Slug, "video.episode", s.NormalizeImageURL(e.Image))
}

// ForCategory builds metadata for a category listing page
func (s Site) ForCategory(c *models.Category) PageMeta {
	desc := truncate(firstNonEmpty(c.Description, s.Description), maxDescriptionLen)
	return s.build(c.Name, desc, "/category/"+c.Slug, "website", "")
}

// ForStatic builds metadata for a fixed page such as /about or /contact
func (s Site) ForStatic(title, description, path string) PageMeta {
	desc := truncate(firstNonEmpty(description, s.Description), maxDescriptionLen)
	return s.build(title, desc, path, "website", "")
}

// NotFound returns the fixed metadata shell for missing content
func (s Site) NotFound() PageMeta {
	return s.build("Page Not Found", "The page you are looking for does not exist.", "/404", "website", "")
}

func (s Site) build(title, description, path, ogType, image string) PageMeta {
	fullTitle := fmt.Sprintf("%s | %s", title, s.Name)
	canonical := s.Origin + path

	return PageMeta{
		Title:        fullTitle,
		Description:  description,
		CanonicalURL: canonical,
		OpenGraph: OpenGraph{
			Title:       fullTitle,
			Description: description,
			Type:        ogType,
			URL:         canonical,
			Image:       image,
			SiteName:    s.Name,
		},
		TwitterCard: TwitterCard{
			Card:        cardKind(image),
			Title:       fullTitle,
			Description: description,
			Image:       image,
			Site:        s.TwitterUser,
		},
	}
}

// NormalizeImageURL leaves absolute http(s) URLs untouched and prefixes
// relative paths with the canonical origin
func (s Site) NormalizeImageURL(image string) string {
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http") {
		return image
	}
	if !strings.HasPrefix(image, "/") {
		image = "/" + image
	}
	return s.Origin + image
}

func cardKind(image string) string {
	if image == "" {
		return "summary"
	}
	return "summary_large_image"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// truncate shortens s to at most max bytes, preferring a word boundary and
// never splitting a multibyte rune
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndex(s[:max], " ")
	if cut <= 0 {
		cut = max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
	}
	return s[:cut] + "…"
}
