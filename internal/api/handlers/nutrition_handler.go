package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bitescan-api/domain"
	"bitescan-api/internal/api/presenters"
	"bitescan-api/pkg/nutrition"
)

type (
	NutritionHandler interface {
		EnrichItems(c *fiber.Ctx) error
		Search(c *fiber.Ctx) error
	}

	nutritionHandler struct {
		nutritionService nutrition.NutritionService
		validator        *validator.Validate
	}
)

func NewNutritionHandler(nutritionService nutrition.NutritionService, validator *validator.Validate) NutritionHandler {
	return &nutritionHandler{
		nutritionService: nutritionService,
		validator:        validator,
	}
}

func (h *nutritionHandler) EnrichItems(c *fiber.Ctx) error {
	req := new(domain.EnrichItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedItemsMissing, err)
	}

	items, err := h.nutritionService.EnrichItems(c.Context(), req.Items)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedEnrichItems, err)
	}

	return presenters.SuccessResponse(c, domain.EnrichItemsResponse{Items: items}, fiber.StatusOK, domain.MessageSuccessEnrichItems)
}

func (h *nutritionHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchNutrition, domain.ErrEmptyQuery)
	}

	res, err := h.nutritionService.Search(c.Context(), query)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSearchNutrition, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchNutrition)
}
