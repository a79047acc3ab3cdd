package exts

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	var form *FormError
	if errors.As(err, &form) {
		return c.Status(fiber.StatusBadRequest).JSON(form)
	}

	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"path":  c.Path(),
	})
}

// LookupError maps a failed lookup onto not found and everything else onto an internal error.
func LookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
