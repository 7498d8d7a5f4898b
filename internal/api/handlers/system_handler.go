package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type (
	SystemHandler interface {
		Health(c *fiber.Ctx) error
	}

	systemHandler struct{}
)

func NewSystemHandler() SystemHandler {
	return &systemHandler{}
}

func (h *systemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
