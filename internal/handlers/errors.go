package handlers

import (
	"errors"
	"fmt"

	"tokobaju/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// badBody answers a request whose body could not be parsed.
func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validationFailed answers a request rejected by field validation.
func validationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  fields,
	})
}

// fieldErrors flattens validator errors into field -> message.
func fieldErrors(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["body"] = err.Error()
	}
	return errorMessages
}

// catalogError maps a catalog service error to the closest status code.
// Rejected input and malformed IDs answer 400 and a missing item 404; only
// unexpected errors answer 500, with fallback as the message.
func catalogError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr.Fields)
	case errors.Is(err, services.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid clothes ID",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Clothes not found",
		})
	}

	logger.Error(fallback,
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}
