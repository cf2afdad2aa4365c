// handlers/errors.go
package handlers

import (
	"errors"
	"time"

	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service denial to a structured JSON response. Cooldown
// denials carry the remaining wait so callers can surface a retry hint.
func respondError(c *fiber.Ctx, err error) error {
	if ce, ok := services.AsCooldown(err); ok {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":    "cooldown active",
			"retry_in": ce.Remaining.Round(time.Second).String(),
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrAlreadyOwned),
		errors.Is(err, services.ErrBindingExists),
		errors.Is(err, services.ErrCodeTaken):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// memberFrom pulls the member identity off the request context. Handlers
// for member-scoped commands answer missingMember when the gateway omitted
// it.
func memberFrom(c *fiber.Ctx) (string, bool) {
	id := middleware.MemberID(c)
	return id, id != ""
}

func missingMember(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "missing X-Member-ID",
	})
}
