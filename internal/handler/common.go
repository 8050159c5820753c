package handler

import (
	"errors"
	"strconv"

	"go-bengkel-api/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// parseID parses the numeric :id route param.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicateCode),
		errors.Is(err, apperr.ErrConflictInUse),
		errors.Is(err, apperr.ErrInsufficientStock),
		apperr.IsValidation(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError maps a service error onto its HTTP status. Unexpected store
// failures get a generic body; the detail goes to the log only.
func respondError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("unexpected store failure")
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
