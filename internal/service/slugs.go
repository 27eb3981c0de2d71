package service

import (
	"fmt"
	"regexp"

	"github.com/gosimple/slug"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// reservedSlugs are path segments owned by static routes. The router never
// sends them to the resolver, and the admin write path refuses to assign
// them as content slugs.
var reservedSlugs = map[string]bool{
	"about":          true,
	"acceptable-use": true,
	"admin":          true,
	"api":            true,
	"book":           true,
	"category":       true,
	"contact":        true,
	"dmca":           true,
	"health":         true,
	"news":           true,
	"podcast":        true,
	"privacy":        true,
	"private":        true,
	"robots.txt":     true,
	"sitemap.xml":    true,
	"uploads":        true,
	"user-agreement": true,
}

// IsReservedSlug reports whether the segment belongs to a static route
func IsReservedSlug(s string) bool {
	return reservedSlugs[s]
}

// normalizeSlug derives a slug from the title when none was supplied and
// validates the result against the URL-safe pattern and the reserved set
func normalizeSlug(provided, title string) (string, error) {
	s := provided
	if s == "" {
		s = slug.Make(title)
	}
	if s == "" {
		return "", &ValidationError{Field: "slug", Message: "slug could not be derived from title"}
	}
	if !slugPattern.MatchString(s) {
		return "", &ValidationError{Field: "slug", Message: fmt.Sprintf("slug %q is not URL-safe", s)}
	}
	if IsReservedSlug(s) {
		return "", &ValidationError{Field: "slug", Message: fmt.Sprintf("slug %q is a reserved path", s)}
	}
	return s, nil
}

// ValidationError marks admin input rejected before any write happened
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
