// handlers/moderation.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupModerationRoutes wires the warning commands. The target member comes
// from the body or query; the issuer is the acting member from the gateway
// headers.
func SetupModerationRoutes(app *fiber.App, moderation *services.ModerationService) {
	group := app.Group("/warnings", middleware.CommunityContextMiddleware())

	group.Post("/", func(c *fiber.Ctx) error {
		issuerID, ok := memberFrom(c)
		if !ok {
			return missingMember(c)
		}
		type Req struct {
			MemberID string `json:"member_id"`
			Reason   string `json:"reason"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.MemberID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "member_id is required",
			})
		}

		res, err := moderation.Warn(middleware.CommunityID(c), req.MemberID, issuerID, req.Reason)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	group.Get("/", func(c *fiber.Ctx) error {
		memberID := c.Query("member_id")
		if memberID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "member_id query parameter is required",
			})
		}
		warnings := moderation.Warnings(middleware.CommunityID(c), memberID)
		return c.JSON(fiber.Map{
			"member_id": memberID,
			"count":     len(warnings),
			"warnings":  warnings,
		})
	})

	group.Delete("/", func(c *fiber.Ctx) error {
		memberID := c.Query("member_id")
		if memberID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "member_id query parameter is required",
			})
		}
		cleared, err := moderation.ClearWarnings(middleware.CommunityID(c), memberID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"member_id": memberID,
			"cleared":   cleared,
		})
	})
}
