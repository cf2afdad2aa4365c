// handlers/events.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupEventRoutes wires the gateway event surface: inbound message and
// reaction events carry their member identity in the body, not headers.
func SetupEventRoutes(app *fiber.App, leveling *services.LevelingService, reactions *services.ReactionRoleService) {
	events := app.Group("/events", middleware.CommunityContextMiddleware())

	events.Post("/message", func(c *fiber.Ctx) error {
		type Req struct {
			MemberID string `json:"member_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.MemberID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "member_id is required",
			})
		}

		res, err := leveling.OnMessage(middleware.CommunityID(c), req.MemberID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	events.Post("/reaction", func(c *fiber.Ctx) error {
		type Req struct {
			MemberID  string `json:"member_id"`
			MessageID string `json:"message_id"`
			Emoji     string `json:"emoji"`
			Added     bool   `json:"added"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.MemberID == "" || req.MessageID == "" || req.Emoji == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "member_id, message_id and emoji are required",
			})
		}

		roleID, matched := reactions.HandleReaction(
			c.Context(), middleware.CommunityID(c), req.MessageID, req.Emoji, req.MemberID, req.Added)
		return c.JSON(fiber.Map{
			"matched": matched,
			"role_id": roleID,
		})
	})
}
