package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	WSGameIDKey   = "wsGameID"
	WSPlayerIDKey = "wsPlayerID"
)

// WebSocketUpgrade rejects anything that is not an upgrade attempt and copies
// the ids into locals, since the connection handler cannot read route params
// after the upgrade. Routes without a :gameId (matchmaking) store "".
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		playerID := PlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		c.Locals(WSGameIDKey, c.Params("gameId"))
		c.Locals(WSPlayerIDKey, playerID)
		return c.Next()
	}
}
