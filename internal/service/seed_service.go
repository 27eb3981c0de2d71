package service

import (
	"context"
	"fmt"

	"github.com/brand-site-api/internal/models"
	"github.com/brand-site-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SeedResult reports what the idempotent category seed did
type SeedResult struct {
	Inserted int `json:"inserted"`
	Existing int `json:"existing"`
}

// seedCategories is the fixed category set. The seed is keyed on slug and
// safe to run on every startup.
var seedCategories = []models.Category{
	{Name: "Energy", Slug: "energy", Description: "Energy markets, policy and infrastructure"},
	{Name: "Health", Slug: "health", Description: "Health, fitness and longevity"},
	{Name: "Finance", Slug: "finance", Description: "Markets, investing and personal finance"},
	{Name: "Technology", Slug: "technology", Description: "Technology and innovation"},
	{Name: "Leadership", Slug: "leadership", Description: "Leadership and entrepreneurship"},
}

// seedService is the concrete implementation of SeedService
type seedService struct {
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func newSeedService(categories repository.CategoryRepository, log zerolog.Logger) SeedService {
	return &seedService{
		categories: categories,
		log:        log.With().Str("service", "seed").Logger(),
	}
}

// SeedCategories upserts the fixed category set. Rows whose slug already
// exists are counted as existing and left unchanged.
func (s *seedService) SeedCategories(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}
	for _, cat := range seedCategories {
		cat.ID = uuid.New().String()
		inserted, err := s.categories.Upsert(ctx, &cat)
		if err != nil {
			return nil, fmt.Errorf("seeding category %q: %w", cat.Slug, err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Existing++
		}
	}

	s.log.Info().
		Int("inserted", result.Inserted).
		Int("existing", result.Existing).
		Msg("Category seed completed")
	return result, nil
}
