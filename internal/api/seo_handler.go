package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brand-site-api/internal/meta"
	"github.com/brand-site-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SEOHandler serves the crawler-facing documents: sitemap.xml and robots.txt
type SEOHandler struct {
	content service.ContentService
	site    meta.Site
	log     zerolog.Logger
}

// NewSEOHandler creates a new SEOHandler
func NewSEOHandler(content service.ContentService, site meta.Site, log zerolog.Logger) *SEOHandler {
	return &SEOHandler{
		content: content,
		site:    site,
		log:     log.With().Str("handler", "seo").Logger(),
	}
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// staticSitemapPaths is the fixed page set with its priority weights
var staticSitemapPaths = []struct {
	Path     string
	Priority string
}{
	{"/", "1.0"},
	{"/about", "0.8"},
	{"/podcast", "0.9"},
	{"/news", "0.9"},
	{"/contact", "0.6"},
	{"/book", "0.7"},
	{"/privacy", "0.3"},
	{"/dmca", "0.3"},
	{"/acceptable-use", "0.3"},
	{"/user-agreement", "0.3"},
}

// Sitemap handles GET /sitemap.xml, enumerating every published article,
// episode and category URL plus the static set
func (h *SEOHandler) Sitemap(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now().UTC().Format("2006-01-02")

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range staticSitemapPaths {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      h.site.Origin + p.Path,
			LastMod:  now,
			Priority: p.Priority,
		})
	}

	articles, err := h.content.ListArticles(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	for _, a := range articles {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      h.site.Origin + "/" + a.Slug,
			LastMod:  a.UpdatedAt.UTC().Format("2006-01-02"),
			Priority: "0.7",
		})
	}

	episodes, err := h.content.ListEpisodes(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	for _, e := range episodes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      h.site.Origin + "/" + e.Slug,
			LastMod:  e.UpdatedAt.UTC().Format("2006-01-02"),
			Priority: "0.7",
		})
	}

	categories, err := h.content.ListCategories(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	for _, cat := range categories {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:      h.site.Origin + "/category/" + cat.Slug,
			LastMod:  cat.UpdatedAt.UTC().Format("2006-01-02"),
			Priority: "0.5",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml.Header+string(body))
}

// knownCrawlers is the fixed set of recognized crawler user agents
var knownCrawlers = []string{
	"Googlebot",
	"Bingbot",
	"Slurp",
	"DuckDuckBot",
	"Baiduspider",
	"YandexBot",
	"facebookexternalhit",
	"Twitterbot",
	"LinkedInBot",
	"Applebot",
}

// Robots handles GET /robots.txt: general crawling allowed, admin and
// private surfaces excluded
func (h *SEOHandler) Robots(c *gin.Context) {
	var b strings.Builder

	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /private/\n\n")

	for _, crawler := range knownCrawlers {
		fmt.Fprintf(&b, "User-agent: %s\n", crawler)
		b.WriteString("Allow: /\n")
		b.WriteString("Disallow: /admin/\n")
		b.WriteString("Disallow: /api/\n")
		b.WriteString("Disallow: /private/\n\n")
	}

	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", h.site.Origin)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, b.String())
}
