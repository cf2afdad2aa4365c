// handlers/feeds.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedRoutes(app *fiber.App, feeds *services.FeedService) {
	group := app.Group("/feeds", middleware.CommunityContextMiddleware())

	group.Put("/", func(c *fiber.Ctx) error {
		type Req struct {
			FeedChannelID   string `json:"feed_channel_id"`
			NotifyChannelID string `json:"notify_channel_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		watcher, err := feeds.Setup(middleware.CommunityID(c), req.FeedChannelID, req.NotifyChannelID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(watcher)
	})

	group.Post("/toggle", func(c *fiber.Ctx) error {
		type Req struct {
			Enabled bool `json:"enabled"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		watcher, err := feeds.Toggle(middleware.CommunityID(c), req.Enabled)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(watcher)
	})

	group.Get("/", func(c *fiber.Ctx) error {
		watcher, ok := feeds.Status(middleware.CommunityID(c))
		if !ok {
			return respondError(c, services.ErrNotFound)
		}
		return c.JSON(watcher)
	})
}
