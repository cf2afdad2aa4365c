// handlers/economy.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEconomyRoutes(app *fiber.App, economy *services.EconomyService) {
	group := app.Group("/", middleware.CommunityContextMiddleware())

	group.Get("/balance", func(c *fiber.Ctx) error {
		memberID, ok := memberFrom(c)
		if !ok {
			return missingMember(c)
		}
		return c.JSON(economy.Balance(middleware.CommunityID(c), memberID))
	})

	earner := func(fn func(communityID, memberID string) (services.EarnResult, error)) fiber.Handler {
		return func(c *fiber.Ctx) error {
			memberID, ok := memberFrom(c)
			if !ok {
				return missingMember(c)
			}
			res, err := fn(middleware.CommunityID(c), memberID)
			if err != nil {
				return respondError(c, err)
			}
			return c.JSON(res)
		}
	}
	group.Post("/daily", earner(economy.Daily))
	group.Post("/work", earner(economy.Work))
	group.Post("/fish", earner(economy.Fish))

	mover := func(fn func(communityID, memberID string, amount int64) (services.BalanceResult, error)) fiber.Handler {
		return func(c *fiber.Ctx) error {
			memberID, ok := memberFrom(c)
			if !ok {
				return missingMember(c)
			}
			type Req struct {
				Amount int64 `json:"amount"`
			}
			var req Req
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid JSON",
					"cause": err.Error(),
				})
			}
			res, err := fn(middleware.CommunityID(c), memberID, req.Amount)
			if err != nil {
				return respondError(c, err)
			}
			return c.JSON(res)
		}
	}
	group.Post("/deposit", mover(economy.Deposit))
	group.Post("/withdraw", mover(economy.Withdraw))
}
