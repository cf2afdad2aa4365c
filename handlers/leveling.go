// handlers/leveling.go
package handlers

import (
	"strconv"

	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLevelingRoutes(app *fiber.App, lb *services.LeaderboardService) {
	group := app.Group("/", middleware.CommunityContextMiddleware())

	group.Get("/rank", func(c *fiber.Ctx) error {
		memberID, ok := memberFrom(c)
		if !ok {
			return missingMember(c)
		}
		return c.JSON(lb.Profile(middleware.CommunityID(c), memberID))
	})

	group.Get("/leaderboard", func(c *fiber.Ctx) error {
		topN, _ := strconv.Atoi(c.Query("top", "10"))
		entries := lb.Rank(middleware.CommunityID(c), topN)
		return c.JSON(fiber.Map{"entries": entries})
	})

	// Binds the channel that receives the periodic leaderboard post.
	group.Put("/leaderboard/channel", func(c *fiber.Ctx) error {
		type Req struct {
			ChannelID string `json:"channel_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.ChannelID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "channel_id is required",
			})
		}
		lb.Store.SetLeaderboardChannel(middleware.CommunityID(c), req.ChannelID)
		return c.JSON(fiber.Map{"channel_id": req.ChannelID})
	})
}
