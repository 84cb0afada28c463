package middleware

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/ritik0027/SnapTube-Backend/pkg/hash"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger = zerolog.Nop()

// InitLogger sets up the global zerolog logger. Production writes JSON to
// stdout; other environments get the human-readable console writer.
func InitLogger(level zerolog.Level, service string, pretty bool) zerolog.Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", service).
		Logger()
	return Logger
}

// SanitizePath replaces id segments with placeholders so user ids never reach
// logs and metric labels stay bounded.
func SanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		switch parts[i-1] {
		case "videos":
			parts[i] = ":videoId"
		case "users":
			if parts[i] != "me" {
				parts[i] = ":userId"
			}
		case "reactions":
			// kind stays, the id after it goes
			if i+1 < len(parts) {
				parts[i+1] = ":id"
			}
		}
	}
	return strings.Join(parts, "/")
}

// NewRequestLogger returns a Fiber middleware that logs each request as
// structured JSON via zerolog. Raw IPs are hashed and id segments sanitized.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := Logger.Info()
		if status >= 500 {
			evt = Logger.Error()
		} else if status >= 400 {
			evt = Logger.Warn()
		}

		evt.
			Str("method", c.Method()).
			Str("path", SanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hash.Fingerprint(c.IP())).
			Bool("identified", CallerID(c) != nil).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}
