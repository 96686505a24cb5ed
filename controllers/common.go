package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/reportsink/reportsink/helpers"
)

// renderError maps the error taxonomy onto HTTP responses. Anything outside
// the taxonomy is treated as a store failure.
func renderError(c *fiber.Ctx, err error) error {
	var validationErr *helpers.ValidationError
	var conflictErr *helpers.ConflictError

	switch {
	case errors.Is(err, helpers.ErrEndpointNotFound):
		return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{"error": err.Error()})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &conflictErr):
		return c.Status(fiber.StatusConflict).JSON(&fiber.Map{"error": conflictErr.Error()})
	}

	sentry.CaptureException(err)
	slog.Error(fmt.Sprintf("Unhandled store failure: %v", err))

	return c.Status(fiber.StatusInternalServerError).JSON(&fiber.Map{"error": "The server has encountered an error that cannot be handled."})
}
