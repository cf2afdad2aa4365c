// handlers/reactionroles.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReactionRoleRoutes(app *fiber.App, reactions *services.ReactionRoleService) {
	group := app.Group("/reaction-roles", middleware.CommunityContextMiddleware())

	group.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"bindings": reactions.List(middleware.CommunityID(c))})
	})

	group.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			MessageID string `json:"message_id"`
			Emoji     string `json:"emoji"`
			RoleID    string `json:"role_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		err := reactions.Bind(middleware.CommunityID(c), req.MessageID, req.Emoji, req.RoleID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message_id": req.MessageID,
			"emoji":      req.Emoji,
			"role_id":    req.RoleID,
		})
	})

	// Empty emoji clears every binding on the message.
	group.Delete("/", func(c *fiber.Ctx) error {
		messageID := c.Query("message_id")
		if messageID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "message_id query parameter is required",
			})
		}
		err := reactions.Unbind(middleware.CommunityID(c), messageID, c.Query("emoji"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"unbound": messageID})
	})
}
