package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewCORS lets the SnapTube web app call the API from its own origin. The
// frontend reads feeds with GET and toggles reactions with PUT, passing the
// signed-in user in the X-User-ID header. Rate limit headers are exposed so
// the client can back off before it hits a 429.
func NewCORS(corsOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: splitOrigins(corsOrigins),
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPut,
			fiber.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			UserIDHeader,
		},
		ExposeHeaders: []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			fiber.HeaderRetryAfter,
		},
		MaxAge: 86400,
	})
}

// splitOrigins parses the cors_origins setting, e.g.
// "https://snaptube.app, https://studio.snaptube.app". Blank entries and
// duplicates are dropped; an empty list or any "*" entry allows every origin.
func splitOrigins(raw string) []string {
	var origins []string
	seen := make(map[string]struct{})
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return []string{"*"}
		}
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
