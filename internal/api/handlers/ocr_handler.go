package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bitescan-api/domain"
	"bitescan-api/internal/api/presenters"
	"bitescan-api/pkg/ocr"
)

type (
	OcrHandler interface {
		ScanReceipt(c *fiber.Ctx) error
	}

	ocrHandler struct {
		ocrService ocr.OcrService
		validator  *validator.Validate
	}
)

func NewOcrHandler(ocrService ocr.OcrService, validator *validator.Validate) OcrHandler {
	return &ocrHandler{
		ocrService: ocrService,
		validator:  validator,
	}
}

func (h *ocrHandler) ScanReceipt(c *fiber.Ctx) error {
	req := new(domain.ScanReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanReceipt, err)
	}

	res, err := h.ocrService.ScanReceipt(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedScanReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessScanReceipt)
}
