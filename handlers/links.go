// handlers/links.go
package handlers

import (
	"guild-economy-system/middleware"
	"guild-economy-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLinkRoutes(app *fiber.App, links *services.ShortLinkService) {
	group := app.Group("/links", middleware.CommunityContextMiddleware())

	group.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			URL  string `json:"url"`
			Code string `json:"code"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil || req.URL == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "url is required",
			})
		}

		link, err := links.Shorten(middleware.CommunityID(c), req.URL, req.Code)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(link)
	})

	group.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"links": links.List(middleware.CommunityID(c))})
	})

	group.Get("/:code", func(c *fiber.Ctx) error {
		target, ok := links.Expand(middleware.CommunityID(c), c.Params("code"))
		if !ok {
			return respondError(c, services.ErrNotFound)
		}
		return c.JSON(fiber.Map{
			"code": c.Params("code"),
			"url":  target,
		})
	})

	group.Delete("/:code", func(c *fiber.Ctx) error {
		if err := links.Delete(middleware.CommunityID(c), c.Params("code")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": c.Params("code")})
	})
}
