package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller id set by the upstream identity provider.
const UserIDHeader = "X-User-ID"

type callerKey struct{}

// Identity resolves the optional caller from UserIDHeader. Requests without
// the header continue anonymously; a malformed id is rejected.
func Identity() fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(UserIDHeader))
		if raw == "" {
			return c.Next()
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "INVALID_IDENTITY", UserIDHeader+" must be a UUID")
		}
		c.Locals(callerKey{}, id.String())
		return c.Next()
	}
}

// CallerID returns the caller resolved by Identity, or nil for anonymous requests.
func CallerID(c fiber.Ctx) *string {
	id, ok := c.Locals(callerKey{}).(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}
