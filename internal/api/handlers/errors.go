package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bitescan-api/domain"
)

// statusFor maps service sentinels onto HTTP statuses. Anything unknown is
// a server error; transaction failures are surfaced once, here.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoImage),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrEmptyItems),
		errors.Is(err, domain.ErrItemsMissing),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrOcrFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrUserDisabled):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrReceiptNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrOcrExecution),
		errors.Is(err, domain.ErrOcrTimeout),
		errors.Is(err, domain.ErrProviderUnavailable),
		errors.Is(err, domain.ErrProviderRateLimited):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
