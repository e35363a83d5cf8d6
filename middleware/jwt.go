package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"greenbloom/utils"
)

const visitorKey = "visitor_id"

// Visitor identifies the browser behind each request. The id comes from the
// signed visitor cookie or, for API clients, a Bearer token; a request with
// neither gets a fresh id and cookie.
func Visitor(secret string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(utils.VisitorCookie)
		if token == "" {
			if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token != "" {
			if id, err := utils.ParseVisitorToken(secret, token); err == nil {
				c.Locals(visitorKey, id)
				return c.Next()
			}
		}

		id := uuid.NewString()
		signed, err := utils.GenerateVisitorToken(secret, id, ttl)
		if err != nil {
			zap.L().Error("sign visitor token", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "cannot identify visitor"})
		}
		utils.SetVisitorCookie(c, signed, ttl)
		c.Locals(visitorKey, id)
		return c.Next()
	}
}

// VisitorID returns the id stored by Visitor, or "" outside it.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(visitorKey).(string)
	return id
}
