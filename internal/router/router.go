package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ritik0027/SnapTube-Backend/internal/handler"
	"github.com/ritik0027/SnapTube-Backend/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Reaction *handler.ReactionHandler
	Feed     *handler.FeedHandler
	Health   *handler.HealthHandler
}

// Limiters holds the rate limiters applied to route groups. Nil entries
// leave the group unlimited.
type Limiters struct {
	Reactions *middleware.RateLimiter
	Reads     *middleware.RateLimiter
}

// NewApp returns a Fiber app configured for the API. Immutable makes every
// value read from the request (params, headers, query) a copy, so ids and
// kinds can be kept in stores after the request buffer is reused.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "SnapTube API",
		ServerHeader: "SnapTube",
		Immutable:    true,
	})
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, l Limiters, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api", middleware.Identity())

	reads := limit(l.Reads)
	writes := limit(l.Reactions)

	// fiber runs the trailing handlers first and the route handler last,
	// so each limiter follows the handler it guards.

	// Reaction routes
	api.Put("/reactions/:kind/:id", h.Reaction.Set, writes)
	api.Get("/reactions/:kind/:id", h.Reaction.Get, reads)

	// Video routes
	api.Get("/videos", h.Feed.Search, reads)
	api.Get("/videos/:videoId", h.Feed.Video, reads)
	api.Get("/videos/:videoId/comments", h.Feed.VideoComments, reads)

	// User routes
	api.Get("/users/me/liked-videos", h.Feed.LikedVideos, reads)
	api.Get("/users/:userId/videos", h.Feed.UserVideos, reads)
	api.Get("/users/:userId/tweets", h.Feed.UserTweets, reads)

	// Feed routes
	api.Get("/feed/subscriptions", h.Feed.Subscriptions, reads)
}

func limit(rl *middleware.RateLimiter) fiber.Handler {
	if rl == nil {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return rl.Handler()
}
