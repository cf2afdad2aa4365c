// middleware/auth.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// CommunityContextMiddleware extracts the community and member identity the
// gateway attaches to every forwarded request. Community ID is mandatory;
// member ID is only present on member-scoped calls and each handler decides
// whether it needs one.
func CommunityContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		communityID := c.Get("X-Community-ID")
		if communityID == "" {
			log.Printf("❌ [CTX] X-Community-ID missing on %s", c.Path())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing X-Community-ID — request must come through the gateway",
			})
		}

		c.Locals("community_id", communityID)
		c.Locals("member_id", c.Get("X-Member-ID"))
		return c.Next()
	}
}

// CommunityID reads the community identity the middleware attached.
func CommunityID(c *fiber.Ctx) string {
	id, _ := c.Locals("community_id").(string)
	return id
}

// MemberID reads the member identity the middleware attached; empty when the
// request has no member scope.
func MemberID(c *fiber.Ctx) string {
	id, _ := c.Locals("member_id").(string)
	return id
}
