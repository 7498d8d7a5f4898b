package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"bitescan-api/domain"
	"bitescan-api/internal/config"
)

type (
	// Provider resolves a free-text food name to macro nutrients, or a
	// not-found result. Implementations must be safe for concurrent use by
	// the enrichment worker pool.
	Provider interface {
		Natural(ctx context.Context, query string) (*domain.NutritionResult, error)
		Instant(ctx context.Context, query string) ([]domain.NutritionSuggestion, error)
	}

	nutritionixClient struct {
		baseURL    string
		appID      string
		appKey     string
		httpClient *http.Client
	}
)

// NewNutritionixClient builds the Nutritionix gateway. Credentials stay
// server-side; the client never surfaces provider response bodies.
func NewNutritionixClient(cfg *config.Config) Provider {
	return &nutritionixClient{
		baseURL: cfg.NutritionixBaseURL,
		appID:   cfg.NutritionixAppID,
		appKey:  cfg.NutritionixAppKey,
		httpClient: &http.Client{
			Timeout: cfg.NutritionTimeout,
		},
	}
}

type naturalFood struct {
	FoodName          string   `json:"food_name"`
	ServingQty        *float64 `json:"serving_qty"`
	ServingUnit       string   `json:"serving_unit"`
	ServingWeightGram *float64 `json:"serving_weight_grams"`
	Calories          *float64 `json:"nf_calories"`
	Protein           *float64 `json:"nf_protein"`
	TotalFat          *float64 `json:"nf_total_fat"`
	TotalCarbohydrate *float64 `json:"nf_total_carbohydrate"`
}

func (c *nutritionixClient) Natural(ctx context.Context, query string) (*domain.NutritionResult, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/natural/nutrients", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var payload struct {
		Foods []naturalFood `json:"foods"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrProviderUnavailable)
	}

	if len(payload.Foods) == 0 {
		return nil, domain.ErrItemNotFound
	}

	f := payload.Foods[0]
	return &domain.NutritionResult{
		Name:              f.FoodName,
		ServingQty:        deref(f.ServingQty),
		ServingUnit:       f.ServingUnit,
		ServingWeightGram: deref(f.ServingWeightGram),
		Macros: domain.Macros{
			Calories: deref(f.Calories),
			Protein:  deref(f.Protein),
			Fat:      deref(f.TotalFat),
			Carbs:    deref(f.TotalCarbohydrate),
		},
	}, nil
}

func (c *nutritionixClient) Instant(ctx context.Context, query string) ([]domain.NutritionSuggestion, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	endpoint := c.baseURL + "/search/instant?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var payload struct {
		Common []struct {
			FoodName string `json:"food_name"`
		} `json:"common"`
		Branded []struct {
			FoodName string `json:"food_name"`
		} `json:"branded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrProviderUnavailable)
	}

	suggestions := make([]domain.NutritionSuggestion, 0, len(payload.Common)+len(payload.Branded))
	for _, f := range payload.Common {
		suggestions = append(suggestions, domain.NutritionSuggestion{Name: f.FoodName})
	}
	for _, f := range payload.Branded {
		suggestions = append(suggestions, domain.NutritionSuggestion{Name: f.FoodName, Branded: true})
	}
	return suggestions, nil
}

func (c *nutritionixClient) setHeaders(req *http.Request) {
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)
}

// checkStatus maps provider HTTP statuses onto the error taxonomy: 429 is
// a backoff candidate, other 4xx are a client-input problem terminal for
// the queried item, 5xx are transient.
func checkStatus(status int) error {
	switch {
	case status == http.StatusTooManyRequests:
		return domain.ErrProviderRateLimited
	case status >= 500:
		return fmt.Errorf("%w: provider returned %d", domain.ErrProviderUnavailable, status)
	case status >= 400:
		return domain.ErrItemNotFound
	}
	return nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
