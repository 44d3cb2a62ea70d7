package handlers

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bagshop/internal/auth"
	"bagshop/internal/domain"
	applog "bagshop/internal/log"
)

// RequireUser admits requests carrying a valid bearer token and stores the
// user number in Locals.
func RequireUser(tokens *auth.Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			applog.Security(c, "auth.token.missing", nil)
			return domain.ErrNoToken
		}
		userNo, err := tokens.Verify(parts[1])
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return err
		}
		c.Locals(applog.UserLocal, userNo)
		return c.Next()
	}
}

// RequireAPIKey guards admin routes with X-API-Key. An empty key disables the check.
func RequireAPIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		got := c.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			applog.Security(c, "access.denied.admin", nil)
			return domain.Unauthenticated(domain.CodeInvalidAPIKey, "invalid or missing API key", nil)
		}
		return c.Next()
	}
}

func userNo(c *fiber.Ctx) int64 {
	n, _ := c.Locals(applog.UserLocal).(int64)
	return n
}
