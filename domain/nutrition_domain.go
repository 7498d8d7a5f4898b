package domain

import (
	"errors"
)

const (
	// Per-item enrichment outcome, surfaced so a manual-fix flow can pick
	// up unresolved items.
	NutritionStatusResolved = "resolved"
	NutritionStatusSkipped  = "skipped"
	NutritionStatusMissing  = "missing"
)

var (
	MessageSuccessEnrichItems     = "nutrition data resolved"
	MessageSuccessSearchNutrition = "nutrition suggestions retrieved"

	MessageFailedEnrichItems     = "failed to resolve nutrition data"
	MessageFailedSearchNutrition = "failed to retrieve nutrition suggestions"
	MessageFailedItemsMissing    = "items missing"

	// ErrProviderUnavailable covers network errors, timeouts and provider
	// 5xx responses. Retryable by the caller.
	ErrProviderUnavailable = errors.New("nutrition provider unavailable")
	ErrProviderRateLimited = errors.New("nutrition provider rate limited")
	// ErrItemNotFound is terminal for a single item only, never for a batch.
	ErrItemNotFound = errors.New("no nutrition match for item")
	ErrItemsMissing = errors.New("items missing")
	ErrEmptyQuery   = errors.New("query cannot be empty")
)

type (
	// NutritionItem carries one item through enrichment. Macros already set
	// on input are never overwritten.
	NutritionItem struct {
		Name     string   `json:"name" validate:"required"`
		Calories *float64 `json:"calories,omitempty"`
		Protein  *float64 `json:"protein,omitempty"`
		Fat      *float64 `json:"fat,omitempty"`
		Carbs    *float64 `json:"carbs,omitempty"`
		Status   string   `json:"status,omitempty"`
	}

	EnrichItemsRequest struct {
		Items []NutritionItem `json:"items" validate:"required,min=1,dive"`
	}

	EnrichItemsResponse struct {
		Items []NutritionItem `json:"items"`
	}

	// Macros is the resolved nutrient quadruple for one food name.
	Macros struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Fat      float64 `json:"fat"`
		Carbs    float64 `json:"carbs"`
	}

	// NutritionResult is what the provider gateway returns for one query.
	NutritionResult struct {
		Name              string  `json:"name"`
		ServingQty        float64 `json:"serving_qty"`
		ServingUnit       string  `json:"serving_unit"`
		ServingWeightGram float64 `json:"serving_weight_grams"`
		Macros            Macros  `json:"macros"`
	}

	NutritionSuggestion struct {
		Name    string `json:"name"`
		Branded bool   `json:"branded"`
	}

	SearchNutritionResponse struct {
		Suggestions []NutritionSuggestion `json:"suggestions"`
	}
)
