package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	PlayerIDHeader = "X-Player-ID"
	PlayerIDQuery  = "playerId"
	PlayerIDKey    = "playerID"
)

// EnsurePlayerID resolves the caller from the X-Player-ID header, falling
// back to the playerId query parameter for browser WebSocket clients that
// cannot set headers.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(PlayerIDKey) != nil {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query(PlayerIDQuery)
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(PlayerIDKey, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "".
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDKey).(string)
	return id
}
