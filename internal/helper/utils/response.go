package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseValidation renders a rejected write with its field messages.
func ResponseValidation(ctx *fiber.Ctx, verr *domain.ValidationError) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "validation failed",
		"fields": verr.Fields,
	})
}

// ResponseFromError maps service errors onto the envelope: validation
// failures to 400 with fields, missing rows to 404, resolved updates to
// 409, anything else to 500.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return ResponseValidation(ctx, verr)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ResponseError(ctx, fiber.StatusNotFound, "record not found")
	case errors.Is(err, domain.ErrUpdateResolved):
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	default:
		return ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
