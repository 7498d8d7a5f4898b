package nutrition

import (
	"context"
	"errors"
	"sync"
	"time"

	"bitescan-api/domain"
	"bitescan-api/internal/config"
)

type (
	// NutritionService is the enrichment engine: it fills macro fields on a
	// batch of items via the provider, tolerating per-item failures.
	NutritionService interface {
		EnrichItems(ctx context.Context, items []domain.NutritionItem) ([]domain.NutritionItem, error)
		Search(ctx context.Context, query string) (domain.SearchNutritionResponse, error)
	}

	nutritionService struct {
		provider Provider
		cache    Cache
		workers  int
		backoff  time.Duration
	}
)

// NewNutritionService builds the enrichment engine. cache may be nil when
// no redis is configured. workers bounds concurrent provider lookups.
func NewNutritionService(provider Provider, cache Cache, cfg *config.Config) NutritionService {
	workers := cfg.NutritionWorkers
	if workers <= 0 {
		workers = 1
	}
	return &nutritionService{
		provider: provider,
		cache:    cache,
		workers:  workers,
		backoff:  500 * time.Millisecond,
	}
}

// EnrichItems resolves macros for every item that does not already carry
// them. One item's lookup failure never aborts the rest of the batch; the
// only batch-level error is caller cancellation.
func (s *nutritionService) EnrichItems(ctx context.Context, items []domain.NutritionItem) ([]domain.NutritionItem, error) {
	if len(items) == 0 {
		return nil, domain.ErrItemsMissing
	}

	out := make([]domain.NutritionItem, len(items))
	copy(out, items)

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range out {
		if fullyPopulated(&out[i]) {
			// Idempotent short-circuit: no provider call for items whose
			// macros are all known, including legitimately-zero values.
			out[i].Status = domain.NutritionStatusSkipped
			continue
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(item *domain.NutritionItem) {
			defer wg.Done()
			defer func() { <-sem }()
			s.enrichOne(ctx, item)
		}(&out[i])
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *nutritionService) enrichOne(ctx context.Context, item *domain.NutritionItem) {
	if s.cache != nil {
		if macros, ok := s.cache.GetMacros(ctx, item.Name); ok {
			applyMacros(item, *macros)
			item.Status = domain.NutritionStatusResolved
			return
		}
	}

	result, err := s.lookup(ctx, item.Name)
	if err != nil {
		item.Status = domain.NutritionStatusMissing
		return
	}

	applyMacros(item, result.Macros)
	item.Status = domain.NutritionStatusResolved

	if s.cache != nil {
		s.cache.SetMacros(ctx, item.Name, result.Macros)
	}
}

// lookup queries the provider, retrying once after a backoff when rate
// limited.
func (s *nutritionService) lookup(ctx context.Context, name string) (*domain.NutritionResult, error) {
	result, err := s.provider.Natural(ctx, name)
	if !errors.Is(err, domain.ErrProviderRateLimited) {
		return result, err
	}

	select {
	case <-time.After(s.backoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.provider.Natural(ctx, name)
}

func (s *nutritionService) Search(ctx context.Context, query string) (domain.SearchNutritionResponse, error) {
	suggestions, err := s.provider.Instant(ctx, query)
	if err != nil {
		return domain.SearchNutritionResponse{}, err
	}
	return domain.SearchNutritionResponse{Suggestions: suggestions}, nil
}

// applyMacros fills only fields that are still unknown; enrichment never
// overwrites a value that is already present.
func applyMacros(item *domain.NutritionItem, macros domain.Macros) {
	if item.Calories == nil {
		v := macros.Calories
		item.Calories = &v
	}
	if item.Protein == nil {
		v := macros.Protein
		item.Protein = &v
	}
	if item.Fat == nil {
		v := macros.Fat
		item.Fat = &v
	}
	if item.Carbs == nil {
		v := macros.Carbs
		item.Carbs = &v
	}
}

// fullyPopulated checks field presence by nil-ness, so a zero-calorie item
// still counts as populated.
func fullyPopulated(item *domain.NutritionItem) bool {
	return item.Calories != nil && item.Protein != nil && item.Fat != nil && item.Carbs != nil
}
