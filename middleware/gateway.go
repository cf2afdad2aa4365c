// middleware/gateway.go
package middleware

import (
	"crypto/subtle"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware rejects any request that does not carry the shared
// service token the chat gateway attaches as a Bearer credential. The token
// is read once at startup; a missing token is a fatal misconfiguration.
func GatewayAuthMiddleware() fiber.Handler {
	expected := []byte(os.Getenv("GUILD_SERVICE_TOKEN"))
	if len(expected) == 0 {
		log.Fatal("❌ GUILD_SERVICE_TOKEN is not set, refusing to serve unauthenticated")
	}

	return func(c *fiber.Ctx) error {
		presented, ok := strings.CutPrefix(c.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			log.Printf("🚫 [GATEWAY_AUTH] Rejected request for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing gateway token",
			})
		}
		return c.Next()
	}
}
