// handlers/shop.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/models"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupShopRoutes(app *fiber.App, shop *services.ShopService) {
	group := app.Group("/shop", middleware.CommunityContextMiddleware())

	group.Get("/items", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": shop.ListItems(middleware.CommunityID(c))})
	})

	group.Post("/items", func(c *fiber.Ctx) error {
		type Req struct {
			Name     string `json:"name"`
			Price    int64  `json:"price"`
			Category string `json:"category"`
			RoleID   string `json:"role_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		item, err := shop.CreateItem(middleware.CommunityID(c), req.Name, req.Price,
			models.ItemCategory(req.Category), req.RoleID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	group.Delete("/items/:id", func(c *fiber.Ctx) error {
		if err := shop.RemoveItem(middleware.CommunityID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": c.Params("id")})
	})

	group.Post("/buy", func(c *fiber.Ctx) error {
		memberID, ok := memberFrom(c)
		if !ok {
			return missingMember(c)
		}
		type Req struct {
			ItemID string `json:"item_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.ItemID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "item_id is required",
			})
		}

		res, err := shop.Buy(c.Context(), middleware.CommunityID(c), memberID, req.ItemID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	group.Get("/inventory", func(c *fiber.Ctx) error {
		memberID, ok := memberFrom(c)
		if !ok {
			return missingMember(c)
		}
		return c.JSON(fiber.Map{
			"items": shop.Inventory(middleware.CommunityID(c), memberID),
		})
	})
}
